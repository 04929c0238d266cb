package history

import (
	"os"
	"path"
	"sync"

	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"gopkg.in/yaml.v3"
)

func NewFileStorage(root string, storage stg.FileStorage) Storage {
	if storage == nil {
		_ = os.MkdirAll(root, 0700)

		storage = rawfs.NewFSStorage("")
	}

	return &fileStorage{
		root:    root,
		storage: storage,
	}
}

type fileStorage struct {
	root    string
	storage stg.FileStorage
}

func (s *fileStorage) fileNameByKey(key string) string {
	return path.Join(s.root, key+".yaml")
}

func (s *fileStorage) Load(key string) (ps []*Point, err error) {
	d, err := s.storage.ReadFile(s.fileNameByKey(key))
	if err != nil {
		return
	}

	err = yaml.Unmarshal(d, &ps)

	return
}

func (s *fileStorage) Save(key string, ps []*Point) (err error) {
	d, err := yaml.Marshal(ps)
	if err != nil {
		return
	}

	err = s.storage.WriteFile(s.fileNameByKey(key), d)

	return
}

//
//
//

func NewMemStorage() Storage {
	return &memStorage{
		m: make(map[string][]Point),
	}
}

type memStorage struct {
	lock sync.RWMutex
	m    map[string][]Point
}

func (s *memStorage) Load(key string) (ps []*Point, err error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	saved, ok := s.m[key]
	if !ok {
		err = ErrNoHistory

		return
	}

	ps = make([]*Point, 0, len(saved))

	for idx := range saved {
		p := saved[idx]
		ps = append(ps, &p)
	}

	return
}

func (s *memStorage) Save(key string, ps []*Point) error {
	saved := make([]Point, 0, len(ps))

	for _, p := range ps {
		saved = append(saved, *p)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.m[key] = saved

	return nil
}
