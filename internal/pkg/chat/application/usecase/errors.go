package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use
// case. The message pipeline aborts before any broadcast when it occurs: a
// message is never fanned out unless it was durably persisted first.
var ErrPersistence = fmt.Errorf("chat use case persistence error")
