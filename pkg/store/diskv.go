package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/weekplan/pkg/task"
)

// ErrNotFound is returned for unknown task ids.
var ErrNotFound = errors.New("store: task not found")

// Persistence is the key-value store behind the planner. Records are keyed
// by logical name: `task-<id>` for tasks and `done-<id>_<date>` for completed
// occurrences.
type Persistence interface {
	List(ctx context.Context) []*task.Task
	Get(id string) (*task.Task, error)
	Store(t *task.Task) error
	Delete(id string) error
	Completions(ctx context.Context) task.Completions
	SetCompleted(id string, d task.Date, done bool) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	bucketTask = "task"
	bucketDone = "done"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes write the same tree and Watch relies on reads
		// seeing their changes, so nothing is cached.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

type completion struct {
	TaskID    string         `json:"taskId"`
	Date      task.Date      `json:"date"`
	Completed task.Timestamp `json:"completed"`
}

func (p *persistence) read(key string) (*task.Task, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &task.Task{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	t.ID = keyToPathTransform(key).FileName
	return t, nil
}

func (p *persistence) List(ctx context.Context) []*task.Task {
	all := make([]*task.Task, 0)
	for key := range p.d.KeysPrefix(bucketTask+"-", ctx.Done()) {
		t, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, t)
	}
	sortTasks(all)
	return all
}

func (p *persistence) Get(id string) (*task.Task, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	key := taskKey(id)
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.read(key)
}

func (p *persistence) Store(t *task.Task) error {
	if t.Created.IsZero() {
		t.Created = task.Timestamp{Time: time.Now()}
	}
	if t.ID == "" {
		b, _ := json.Marshal(t)
		sum := md5.Sum(append(b, []byte(t.Created.Format(time.RFC3339Nano))...))
		t.ID = fmt.Sprintf("%x", sum[:8])
	}
	if err := validID(t.ID); err != nil {
		return err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.d.Write(taskKey(t.ID), data)
}

func (p *persistence) Delete(id string) error {
	if err := validID(id); err != nil {
		return err
	}
	key := taskKey(id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := p.d.Erase(key); err != nil {
		return err
	}
	prefix := bucketDone + "-" + id + "_"
	var stale []string
	for k := range p.d.KeysPrefix(prefix, nil) {
		stale = append(stale, k)
	}
	for _, k := range stale {
		if err := p.d.Erase(k); err != nil {
			return fmt.Errorf("store: erase completion %s: %w", k, err)
		}
	}
	return nil
}

func (p *persistence) Completions(ctx context.Context) task.Completions {
	out := make(task.Completions)
	for key := range p.d.KeysPrefix(bucketDone+"-", ctx.Done()) {
		name := keyToPathTransform(key).FileName
		if _, _, err := task.ParseOccurrenceKey(name); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		out[name] = struct{}{}
	}
	return out
}

func (p *persistence) SetCompleted(id string, d task.Date, done bool) error {
	if err := validID(id); err != nil {
		return err
	}
	key := bucketDone + "-" + task.OccurrenceKey(id, d)
	if !done {
		if !p.d.Has(key) {
			return nil
		}
		return p.d.Erase(key)
	}
	data, err := json.Marshal(completion{TaskID: id, Date: d, Completed: task.Timestamp{Time: time.Now()}})
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func sortTasks(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		l, r := tasks[i], tasks[j]
		if l.Anchor != r.Anchor {
			return l.Anchor.Before(r.Anchor)
		}
		if l.Start != r.Start {
			return l.Start < r.Start
		}
		return l.ID < r.ID
	})
}

func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\-.`) {
		return fmt.Errorf("store: invalid task id %q", id)
	}
	return nil
}

func taskKey(id string) string {
	return bucketTask + "-" + id
}

// keyToPathTransform maps `bucket-name` to the file `bucket/name`.
func keyToPathTransform(s string) *diskv.PathKey {
	bucket, name, ok := strings.Cut(s, "-")
	if !ok {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{bucket},
		FileName: name,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
