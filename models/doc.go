// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the judging document and the API's request and
response types.

# Document

Database is the single persisted document:

	{"submissions": {...}, "red_xs": {...}}

Both mappings are OrderedMaps so keys come back in the order they were
first written, matching the order of the stored JSON.

# Values

Submission values are arbitrary JSON, held as a Value:

	v, err := models.ParseValue(`{"score": 9}`)
	v.Kind()    // KindObject
	v.Encode()  // {"score":9}

ParseDatabase and ParseValue keep object member order.

# Request Types

  - StorageRequest: key, value, prefix, includeValues

# Response Types

  - ListResponse: keys, items (only when values were requested)
  - GetResponse: value (JSON text or null)
  - SuccessResponse: success
  - HealthResponse: status, timestamp
  - ErrorResponse: error
*/
package models
