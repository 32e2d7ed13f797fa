// Package db provides the in-memory document storage behind the stub
// backend repositories. State lives for the lifetime of the process.
package db

import (
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is anything stored in a Collection.
type Document interface {
	DocID() primitive.ObjectID
}

// Collection is an insertion-ordered in-memory document set, safe for
// concurrent use. Values are stored and returned by copy.
type Collection[T Document] struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]T
	order []primitive.ObjectID
}

func NewCollection[T Document]() *Collection[T] {
	return &Collection[T]{docs: make(map[primitive.ObjectID]T)}
}

func (c *Collection[T]) Insert(doc T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := doc.DocID()
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = doc
}

func (c *Collection[T]) Get(id primitive.ObjectID) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[id]
	if !ok {
		var zero T
		return zero, common.ErrorNotFound
	}
	return doc, nil
}

// Replace overwrites an existing document.
func (c *Collection[T]) Replace(doc T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[doc.DocID()]; !ok {
		return common.ErrorNotFound
	}
	c.docs[doc.DocID()] = doc
	return nil
}

func (c *Collection[T]) Delete(id primitive.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return common.ErrorNotFound
	}
	c.remove(id)
	return nil
}

// DeleteWhere removes every matching document and returns how many were removed.
func (c *Collection[T]) DeleteWhere(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []primitive.ObjectID
	for _, id := range c.order {
		if match(c.docs[id]) {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		c.remove(id)
	}
	return len(ids)
}

func (c *Collection[T]) remove(id primitive.ObjectID) {
	delete(c.docs, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Find returns matching documents in insertion order. A nil match returns all.
func (c *Collection[T]) Find(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		doc := c.docs[id]
		if match == nil || match(doc) {
			out = append(out, doc)
		}
	}
	return out
}

// FindOne returns the first matching document.
func (c *Collection[T]) FindOne(match func(T) bool) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.order {
		if doc := c.docs[id]; match(doc) {
			return doc, nil
		}
	}
	var zero T
	return zero, common.ErrorNotFound
}

func (c *Collection[T]) Count(match func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, id := range c.order {
		if match == nil || match(c.docs[id]) {
			n++
		}
	}
	return n
}
