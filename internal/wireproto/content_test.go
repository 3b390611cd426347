// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package wireproto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenContent_PlainString(t *testing.T) {
	assert.Equal(t, "hello", FlattenContent(json.RawMessage(`"hello"`)))
}

func TestFlattenContent_ArrayOfStrings(t *testing.T) {
	assert.Equal(t, "a\nb\nc", FlattenContent(json.RawMessage(`["a","b","c"]`)))
}

func TestFlattenContent_ArrayOfParts(t *testing.T) {
	raw := json.RawMessage(`[{"type":"text","text":"foo"},{"type":"image_url","image_url":{"url":"x"}},{"type":"text","text":"bar"}]`)
	assert.Equal(t, "foobar", FlattenContent(raw))
}

func TestFlattenContent_SingleStructuredPart(t *testing.T) {
	raw := json.RawMessage(`{"type":"text","text":"solo"}`)
	assert.Equal(t, "solo", FlattenContent(raw))
}

func TestFlattenContent_SingleNonTextPart(t *testing.T) {
	raw := json.RawMessage(`{"type":"image_url","image_url":{"url":"x"}}`)
	assert.Equal(t, "", FlattenContent(raw))
}

func TestFlattenContent_Empty(t *testing.T) {
	assert.Equal(t, "", FlattenContent(nil))
}
