package database

import "errors"

// ErrBlockOutOfOrder is returned when a block written to storage doesn't
// carry the next index of the chain.
var ErrBlockOutOfOrder = errors.New("block is out of order")

// Storage interface represents the behavior required to be implemented by any
// package providing support for reading and writing the chain.
type Storage interface {
	Write(block Block) error
	GetBlock(index uint64) (Block, error)
	ForEach() Iterator
	Len() int
	Reset() error
	Close() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks.
type Iterator interface {
	Next() (Block, error)
	Done() bool
}
