package conversation

import "sync"

// Store владеет состояниями разговоров в памяти процесса
// Lock сериализует события одного клиента, разные клиенты не блокируют друг друга
type Store struct {
	mu     sync.Mutex
	states map[int64]State
	locks  map[int64]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore создает пустое хранилище состояний
func NewStore() *Store {
	return &Store{
		states: make(map[int64]State),
		locks:  make(map[int64]*sessionLock),
	}
}

// Get возвращает состояние клиента, Idle если состояния нет
func (s *Store) Get(customerID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.states[customerID]; ok {
		return st
	}
	return Idle{}
}

// Set перезаписывает состояние; Idle удаляет запись
func (s *Store) Set(customerID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, idle := st.(Idle); idle || st == nil {
		delete(s.states, customerID)
		return
	}
	s.states[customerID] = st
}

// Clear сбрасывает состояние клиента
func (s *Store) Clear(customerID int64) {
	s.Set(customerID, Idle{})
}

// Len количество клиентов в сценарии
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// Lock захватывает блокировку клиента и возвращает функцию освобождения
// Запись блокировки удаляется, когда её никто не держит и не ждет
func (s *Store) Lock(customerID int64) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[customerID]
	if !ok {
		l = &sessionLock{}
		s.locks[customerID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, customerID)
		}
		s.mu.Unlock()
	}
}
