package cache

import (
	"github.com/go-redis/redis/v8"
)

// takeScript reads and deletes a key atomically so a marker can be consumed only once.
var takeScript = redis.NewScript(`
	local value = redis.call('GET', KEYS[1])
	if value then
		redis.call('DEL', KEYS[1])
	end
	return value
`)
