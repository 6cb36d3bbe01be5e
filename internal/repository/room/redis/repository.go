package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type repo struct {
	rc             *redis.Client
	casRoomScript  string
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
		// Commit a full room record conditionally on the stored seq. The DEL
		// before HSET is what clears nullable fields the new record omits.
		casRoomScript: rc.ScriptLoad(context.Background(), `
			local seq = redis.call('HGET', KEYS[1], 'seq')
			if seq == false then
				return -1
			end
			if tonumber(seq) ~= tonumber(ARGV[1]) then
				return 0
			end
			redis.call('DEL', KEYS[1])
			redis.call('HSET', KEYS[1], unpack(ARGV, 2))
			return 1
		`).Val(),
	}
}
