package state

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"blockstyle/inject"
	"blockstyle/style"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// Engine prepares block catalog, compiler and injector from configuration.
// It is safe to call more than once.
func (e *LocalEnv) Engine() error {
	if e.Catalog != nil {
		return nil
	}
	if e.Cfg == nil {
		return errors.New("configuration is not loaded")
	}
	cat, err := e.Cfg.Engine.Catalog()
	if err != nil {
		return fmt.Errorf("unable to prepare block catalog: %w", err)
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	e.Catalog = cat
	e.Compiler = style.NewCompiler(log)
	e.Injector = inject.New(log)

	log.Debug("Engine ready", zap.Int("block types", len(cat.Names())),
		zap.Stringer("strategy", e.Cfg.Engine.Instance.Strategy), zap.String("prefix", e.Cfg.Engine.Instance.Prefix))
	return nil
}
