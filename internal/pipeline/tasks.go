package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/geos-esm/jedi-bundle/internal/config"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

// Task is one step of a build.
type Task string

const (
	TaskClone     Task = "clone"
	TaskConfigure Task = "configure"
	TaskMake      Task = "make"
	TaskAll       Task = "all"
)

// Steps lists the concrete tasks in the order they run.
var Steps = []Task{TaskClone, TaskConfigure, TaskMake}

// ParseTasks turns task names into the ordered list of steps to run.
// Names are case-insensitive and no names means every step.
func ParseTasks(names []string) ([]Task, error) {
	if len(names) == 0 {
		return Steps, nil
	}

	want := make(map[Task]struct{}, len(names))
	for _, n := range names {
		t := Task(strings.ToLower(strings.TrimSpace(n)))
		switch t {
		case TaskAll:
			return Steps, nil
		case TaskClone, TaskConfigure, TaskMake:
			want[t] = struct{}{}
		default:
			return nil, fmt.Errorf(
				"%w: '%s', expected one of %s, %s, %s or %s",
				apperrors.ErrUnknownTask, n, TaskClone, TaskConfigure, TaskMake, TaskAll,
			)
		}
	}

	tasks := make([]Task, 0, len(want))
	for _, t := range Steps {
		if _, ok := want[t]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// Run copies the configuration into the source directory and then runs tasks in order,
// stopping at the first failure.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config, tasks []Task) error {
	if err := p.CopyConfig(cfg); err != nil {
		return err
	}

	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.logger.Info("Running task", "task", t)

		var err error
		switch t {
		case TaskClone:
			err = p.Clone(ctx, cfg)
		case TaskConfigure:
			err = p.Configure(ctx, cfg)
		case TaskMake:
			err = p.Make(ctx, cfg)
		default:
			err = fmt.Errorf("%w: '%s'", apperrors.ErrUnknownTask, t)
		}
		if err != nil {
			return err
		}
	}

	return nil
}
