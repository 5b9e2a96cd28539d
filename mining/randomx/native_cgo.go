//go:build cgo

package randomx

/*
#cgo CFLAGS: -O3
#cgo LDFLAGS: -lrandomx -lstdc++ -lm

#include <stdlib.h>
#include <string.h>

typedef struct randomx_cache randomx_cache;
typedef struct randomx_dataset randomx_dataset;
typedef struct randomx_vm randomx_vm;

typedef enum {
	RANDOMX_FLAG_DEFAULT = 0,
	RANDOMX_FLAG_LARGE_PAGES = 1,
	RANDOMX_FLAG_HARD_AES = 2,
	RANDOMX_FLAG_FULL_MEM = 4,
	RANDOMX_FLAG_JIT = 8,
	RANDOMX_FLAG_SECURE = 16
} randomx_flags;

extern randomx_cache *randomx_alloc_cache(randomx_flags flags);
extern void randomx_init_cache(randomx_cache *cache, const void *key, size_t keySize);
extern void randomx_release_cache(randomx_cache *cache);

extern randomx_dataset *randomx_alloc_dataset(randomx_flags flags);
extern unsigned long randomx_dataset_item_count(void);
extern void randomx_init_dataset(randomx_dataset *dataset, randomx_cache *cache, unsigned long startItem, unsigned long itemCount);
extern void randomx_release_dataset(randomx_dataset *dataset);

extern randomx_vm *randomx_create_vm(randomx_flags flags, randomx_cache *cache, randomx_dataset *dataset);
extern void randomx_destroy_vm(randomx_vm *machine);

extern void randomx_calculate_hash(randomx_vm *machine, const void *input, size_t inputSize, void *output);
*/
import "C"

import (
	"errors"
	"unsafe"
)

// cgoOracle is the real RandomX oracle, backed by libary linked in through
// cgo. It owns exactly one cache/dataset/vm triple and is not safe for
// concurrent use; the mining engine keeps one per worker goroutine.
type cgoOracle struct {
	oracleState

	flags   C.randomx_flags
	cache   *C.randomx_cache
	dataset *C.randomx_dataset
	vm      *C.randomx_vm
	mode    Mode
}

func newHashOracle() HashOracle {
	return &cgoOracle{}
}

// Initialize builds a fresh cache (and, in fast mode, dataset) keyed on
// seed and creates a VM against it, releasing whatever the oracle
// previously held.
func (o *cgoOracle) Initialize(seed [32]byte, mode Mode) error {
	o.release()

	flags := C.randomx_flags(C.RANDOMX_FLAG_DEFAULT | C.RANDOMX_FLAG_HARD_AES | C.RANDOMX_FLAG_JIT)
	if mode == FastMode {
		flags |= C.RANDOMX_FLAG_FULL_MEM
	}
	o.flags = flags
	o.mode = mode

	o.cache = C.randomx_alloc_cache(flags)
	if o.cache == nil {
		return errors.New("randomx: failed to allocate cache")
	}

	key := append([]byte(ArgonSalt), seed[:]...)
	C.randomx_init_cache(o.cache, unsafe.Pointer(&key[0]), C.size_t(len(key)))

	if mode == FastMode {
		o.dataset = C.randomx_alloc_dataset(flags)
		if o.dataset == nil {
			o.release()
			return errors.New("randomx: failed to allocate dataset")
		}
		itemCount := uint64(C.randomx_dataset_item_count())
		C.randomx_init_dataset(o.dataset, o.cache, 0, C.ulong(itemCount))
	}

	o.vm = C.randomx_create_vm(flags, o.cache, o.dataset)
	if o.vm == nil {
		o.release()
		return errors.New("randomx: failed to create vm")
	}

	o.setSeed(seed)
	return nil
}

// Hash computes the RandomX digest of data under the currently loaded seed.
func (o *cgoOracle) Hash(data []byte) [32]byte {
	var out [32]byte
	if len(data) == 0 {
		C.randomx_calculate_hash(o.vm, unsafe.Pointer(nil), 0, unsafe.Pointer(&out[0]))
		return out
	}
	C.randomx_calculate_hash(o.vm, unsafe.Pointer(&data[0]), C.size_t(len(data)), unsafe.Pointer(&out[0]))
	return out
}

// Close releases the VM, dataset, and cache.
func (o *cgoOracle) Close() {
	o.release()
}

func (o *cgoOracle) release() {
	if o.vm != nil {
		C.randomx_destroy_vm(o.vm)
		o.vm = nil
	}
	if o.dataset != nil {
		C.randomx_release_dataset(o.dataset)
		o.dataset = nil
	}
	if o.cache != nil {
		C.randomx_release_cache(o.cache)
		o.cache = nil
	}
}
