// Package memory implementa los repositorios sobre un estado en memoria protegido por mutex.
// Se usa en modo desarrollo (sin DATABASE_URL) y en los tests de casos de uso y controladores.
// Las lecturas devuelven copias: modificar un resultado nunca altera el estado guardado.
package memory

import (
	"sync"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

type record[T any] struct {
	value T
	seq   uint64 // orden de inserción, desempata created_at
}

type state struct {
	seq        uint64
	users      map[string]record[entity.User]
	beans      map[string]record[entity.Bean]
	roastDates map[string]record[entity.RoastDate]
	roasteries map[string]record[entity.Roastery]
	grinders   map[string]record[entity.Grinder]
	brewers    map[string]record[entity.Brewer]
	brews      map[string]record[entity.Brew]
}

func newState() *state {
	return &state{
		users:      map[string]record[entity.User]{},
		beans:      map[string]record[entity.Bean]{},
		roastDates: map[string]record[entity.RoastDate]{},
		roasteries: map[string]record[entity.Roastery]{},
		grinders:   map[string]record[entity.Grinder]{},
		brewers:    map[string]record[entity.Brewer]{},
		brews:      map[string]record[entity.Brew]{},
	}
}

func cloneMap[T any](m map[string]record[T]) map[string]record[T] {
	out := make(map[string]record[T], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		seq:        s.seq,
		users:      cloneMap(s.users),
		beans:      cloneMap(s.beans),
		roastDates: cloneMap(s.roastDates),
		roasteries: cloneMap(s.roasteries),
		grinders:   cloneMap(s.grinders),
		brewers:    cloneMap(s.brewers),
		brews:      cloneMap(s.brews),
	}
}

func (s *state) next() uint64 {
	s.seq++
	return s.seq
}

// FaultFunc se consulta antes de cada operación ("beans.create", "brews.update", ...).
// Un error no nil aborta la operación sin tocar el estado.
type FaultFunc func(op string) error

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu    sync.RWMutex
	state *state
	fault FaultFunc
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// SetFault instala (o quita, con nil) el inyector de fallos.
func (s *Store) SetFault(f FaultFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = f
}

// check consulta el inyector fuera del lock: un fallo que bloquea (latencia simulada) no frena
// al resto de operaciones.
func (s *Store) check(op string) error {
	s.mu.RLock()
	f := s.fault
	s.mu.RUnlock()
	if f == nil {
		return nil
	}
	return f(op)
}

// read ejecuta fn con lock de lectura.
func (s *Store) read(op string, fn func(st *state) error) error {
	if err := s.check(op); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// write ejecuta fn con lock de escritura.
func (s *Store) write(op string, fn func(st *state) error) error {
	if err := s.check(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Beans repositorio de beans.
func (s *Store) Beans() *BeanRepository { return &BeanRepository{s: s} }

// RoastDates repositorio de fechas de tueste.
func (s *Store) RoastDates() *RoastDateRepository { return &RoastDateRepository{s: s} }

// Roasteries repositorio de tostadores.
func (s *Store) Roasteries() *RoasteryRepository { return &RoasteryRepository{s: s} }

// Grinders repositorio de molinos.
func (s *Store) Grinders() *GrinderRepository { return &GrinderRepository{s: s} }

// Brewers repositorio de brewers.
func (s *Store) Brewers() *BrewerRepository { return &BrewerRepository{s: s} }

// Brews repositorio de brews.
func (s *Store) Brews() *BrewRepository { return &BrewRepository{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
