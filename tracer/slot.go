package tracer

import (
	"sync"
	"sync/atomic"

	"github.com/achilleasa/hybris/asset/scene"
	"github.com/achilleasa/hybris/log"
	"github.com/pkg/errors"
)

var ErrNoBuffers = errors.New("tracer: cannot install a nil buffer set")

// A SceneSlot holds the buffer set currently in use by the attached tracers.
// A buffer set is always installed as a unit: readers either observe the
// previous set or the new one.
type SceneSlot struct {
	logger  log.Logger
	current atomic.Pointer[scene.Buffers]

	// Serializes installs and tracer attachment.
	mutex   sync.Mutex
	tracers []Tracer
}

func NewSceneSlot() *SceneSlot {
	return &SceneSlot{
		logger:  log.New("scene slot"),
		tracers: make([]Tracer, 0),
	}
}

// Get the installed buffer set or nil if nothing has been installed yet.
func (s *SceneSlot) Current() *scene.Buffers {
	return s.current.Load()
}

// Attach a tracer. If a buffer set is already installed it is pushed to the
// tracer before Attach returns.
func (s *SceneSlot) Attach(tr Tracer) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tracers = append(s.tracers, tr)
	if cur := s.current.Load(); cur != nil {
		return s.push(tr, cur)
	}
	return nil
}

// Install a packed buffer set and push it to all attached tracers. The
// buffer set must not be modified after it has been installed.
func (s *SceneSlot) Install(buffers *scene.Buffers) error {
	if buffers == nil {
		return ErrNoBuffers
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	prev := s.current.Swap(buffers)
	if prev != nil {
		s.logger.Debugf("replacing scene generation %s with %s", prev.Generation, buffers.Generation)
	} else {
		s.logger.Debugf("installing scene generation %s", buffers.Generation)
	}

	var firstErr error
	for _, tr := range s.tracers {
		if err := s.push(tr, buffers); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *SceneSlot) push(tr Tracer, buffers *scene.Buffers) error {
	tr.AppendChange(SetScene, buffers)
	if err := tr.ApplyPendingChanges(); err != nil {
		s.logger.Errorf("tracer %s could not apply scene generation %s: %s", tr.Id(), buffers.Generation, err)
		return errors.Wrapf(err, "tracer %s", tr.Id())
	}
	return nil
}
