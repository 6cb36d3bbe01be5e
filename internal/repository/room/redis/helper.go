package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}

func (r repo) fieldToInt(field string) int {
	i, _ := strconv.Atoi(field)
	return i
}

// fieldToTime decodes the unix-millisecond encoding used for every stored
// timestamp.
func (r repo) fieldToTime(field string) time.Time {
	ms, _ := strconv.ParseInt(field, 10, 64)
	return time.UnixMilli(ms).UTC()
}

func (r repo) optionalString(fields map[string]string, key string) *string {
	value, ok := fields[key]
	if !ok {
		return nil
	}

	return &value
}

func (r repo) optionalInt(fields map[string]string, key string) *int {
	value, ok := fields[key]
	if !ok {
		return nil
	}

	i := r.fieldToInt(value)

	return &i
}

func (r repo) optionalTime(fields map[string]string, key string) *time.Time {
	value, ok := fields[key]
	if !ok {
		return nil
	}

	t := r.fieldToTime(value)

	return &t
}
