package task

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrQueueFull = errors.New("task queue is full")
)

type FullQueueStrategy int

const (
	BlockWhenFull FullQueueStrategy = iota
	ErrorWhenFull
)

type SubmitFunction[T any, R any] func(taskChan chan<- Future[T, R], tf Future[T, R]) error

func GetSubmitFunction[T any, R any](s FullQueueStrategy) SubmitFunction[T, R] {
	switch s {
	case BlockWhenFull:
		return blockWhenFullStrategy[T, R]
	case ErrorWhenFull:
		return errorWhenFullStrategy[T, R]
	default:
		panic(fmt.Sprintf("invalid submit strategy value %d", s))
	}
}

func blockWhenFullStrategy[T any, R any](taskChan chan<- Future[T, R], t Future[T, R]) error {
	select {
	case taskChan <- t:
		return nil
	case <-t.Ctx.Done():
		return context.Canceled
	}
}

func errorWhenFullStrategy[T any, R any](taskChan chan<- Future[T, R], t Future[T, R]) error {
	select {
	case taskChan <- t:
		return nil
	default:
		return ErrQueueFull
	}
}
