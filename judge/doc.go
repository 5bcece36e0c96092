// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package judge implements the judging storage operations shared by every
transport: list, get, set, delete, and red-X listing.

# Key Routing

Set routes a key by name, first match wins:

	submission_42      → submissions, value parsed as JSON
	judge1_x_pitch3    → red_xs, value kept as text
	anything_else      → submissions, value stored as sent

Get only reads submissions, so a red-X key always reads back as null.

# Persistence

Every operation loads the whole document from the Store and mutations save
it back whole:

	svc := judge.NewService(store, cfg.StrictSave)
	resp, err := svc.Set(ctx, "submission_42", &value)

Load failures are logged and treated as an empty document. Save failures
are logged; they only reach the caller as ErrSaveFailed in strict mode.

# Consistency

There is no locking. Two requests that load the same document and each
change a different key will both report success, and the later save
silently drops the earlier change.
*/
package judge
