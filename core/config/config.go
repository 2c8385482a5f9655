package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotPointer is returned when Load gets something other than a non-nil
// struct pointer.
var ErrNotPointer = errors.New("config: target must be a non-nil pointer to a struct")

var (
	dotenvOnce sync.Once
	mu         sync.Mutex
	cache      = map[reflect.Type]reflect.Value{}
)

// Load fills cfg from the environment.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotPointer
	}
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return ErrNotPointer
	}

	dotenvOnce.Do(func() { _ = godotenv.Load() })

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.Interface().(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}
	cache[typ] = reflect.ValueOf(fresh)
	*cfg = fresh
	return nil
}

// MustLoad is Load that panics on failure. Meant for process start-up.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse fills cfg from the environment without the cache.
func Parse[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotPointer
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", reflect.TypeFor[T](), err)
	}
	return nil
}
