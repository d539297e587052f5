package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a named operation.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Run executes tasks concurrently and waits for all of them. The context
// passed to the tasks is canceled as soon as one fails. Failures are joined
// in task order, each prefixed with the task name.
func Run(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := task.Func(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
				cancel()
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}
