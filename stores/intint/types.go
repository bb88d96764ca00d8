package intint

import (
	"encoding/binary"
)

func SerializeInt32(i int32) []byte {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, uint32(i))
	return bytes
}

func DeserializeInt32(bytes []byte) int32 {
	return int32(binary.BigEndian.Uint32(bytes))
}

type Iterator func() (int32, int32, error, Iterator)
type KeyIterator func() (int32, error, KeyIterator)

type MultiMap interface {
	Keys() (KeyIterator, error)
	Iterate() (Iterator, error)
	Find(key int32) (Iterator, error)
	DoFind(key int32, do func(int32, int32) error) error
	Get(key int32) (int32, bool, error)
	Has(key int32) (bool, error)
	Count(key int32) (int, error)
	Add(key int32, value int32) error
	Size() int
	Close() error
	Delete() error
}

func Do(run func() (Iterator, error), do func(key int32, value int32) error) error {
	kvi, err := run()
	if err != nil {
		return err
	}
	var key int32
	var value int32
	for key, value, err, kvi = kvi(); kvi != nil; key, value, err, kvi = kvi() {
		e := do(key, value)
		if e != nil {
			return e
		}
	}
	return err
}

func DoKey(run func() (KeyIterator, error), do func(int32) error) error {
	it, err := run()
	if err != nil {
		return err
	}
	var item int32
	for item, err, it = it(); it != nil; item, err, it = it() {
		e := do(item)
		if e != nil {
			return e
		}
	}
	return err
}
