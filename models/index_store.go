package models

import (
	"sort"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// IndexStore holds indexes by id.
type IndexStore struct {
	initOnce sync.Once
	mutex    sync.RWMutex
	indexes  map[string]*Index
}

func (s *IndexStore) init() {
	s.indexes = map[string]*Index{}
}

func (s *IndexStore) Add(index *Index) {
	s.initOnce.Do(s.init)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.indexes[index.ID]; ok {
		return
	}
	s.indexes[index.ID] = index

	instrumentIncreaseIndexGauge()
	logs.WithTag("index_id", index.ID).
		WithTag("index_name", index.Name).
		WithTag("points", index.Len()).
		Debug("index added")
}

func (s *IndexStore) Remove(index *Index) {
	s.initOnce.Do(s.init)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.indexes[index.ID]; !ok {
		return
	}
	delete(s.indexes, index.ID)

	instrumentDecreaseIndexGauge()
}

func (s *IndexStore) Get(id string) (*Index, bool) {
	s.initOnce.Do(s.init)
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	index, ok := s.indexes[id]
	return index, ok
}

// GetByName returns the first index with the given name, by id order.
func (s *IndexStore) GetByName(name string) (*Index, bool) {
	for _, index := range s.Indexes() {
		if index.Name == name {
			return index, true
		}
	}
	return nil, false
}

// Indexes returns the stored indexes sorted by id.
func (s *IndexStore) Indexes() []*Index {
	s.initOnce.Do(s.init)
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	indexes := make([]*Index, 0, len(s.indexes))
	for _, index := range s.indexes {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(i, j int) bool {
		return indexes[i].ID < indexes[j].ID
	})
	return indexes
}

func (s *IndexStore) Len() int {
	s.initOnce.Do(s.init)
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.indexes)
}
