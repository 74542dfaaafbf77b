package datagen

import (
	"crypto/rand"

	"github.com/keelchain/keel/keel"
)

func RandBytes32() (b keel.Bytes32) {
	rand.Read(b[:])
	return
}

func RandAddress() (addr keel.Address) {
	rand.Read(addr[:])
	return
}

func RandAddresses(n int) []keel.Address {
	addrs := make([]keel.Address, n)
	for i := range addrs {
		addrs[i] = RandAddress()
	}
	return addrs
}

func RandBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}
