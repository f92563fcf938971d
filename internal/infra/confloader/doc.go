// Package confloader loads layered configuration with koanf.
//
// Sources are merged in this order, later ones winning:
//
//  1. defaults supplied with LoadMap
//  2. a YAML file
//  3. a dotenv file
//  4. process environment variables
//
// Environment keys are matched against the keys already known to the
// loader, so RESPKV_SERVER_REDIS_READ_BUFFER resolves to
// server.redis.read_buffer rather than server.redis.read.buffer.
//
// Watcher reports writes to watched files through fsnotify.
package confloader
