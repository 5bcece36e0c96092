// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage persists the judging document.

# Backends

Open picks a Store from the configuration:

	store, err := storage.Open(ctx, cfg)
	defer store.Close()

  - file: FileStore, a pretty-printed JSON file replaced atomically
  - kv: RemoteStore, one record of a KV REST service
  - sqlite, postgres: SQLStore, one row of judge_document
  - redis: RedisStore, one Redis key

In auto mode (the default) the KV backend is used when both
KV_REST_API_URL and KV_REST_API_TOKEN are set, and the file otherwise.

# Document Layout

Every backend stores the same JSON document:

	{
	  "submissions": {"submission_42": {"score": 9}},
	  "red_xs": {"judge1_x_pitch3": "red"}
	}

The KV REST record holds that document as a JSON string, so its get
response looks like {"result": "{\"submissions\":...}"}.

# Missing Documents

A missing file, record, row or key loads as an empty document without an
error. Any other failure is returned to the caller.
*/
package storage
