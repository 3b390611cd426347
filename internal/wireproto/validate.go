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

import "github.com/go-playground/validator/v10"

// validate is shared across every decode call; validator.Validate is
// safe for concurrent use once struct tags are cached, which happens
// on first use per type.
var validate = validator.New()

// Validate runs struct-tag validation against an already-decoded
// internal request (ChatRequest, CompletionRequest). Handlers surface
// a failure as MalformedRequest (400) with the validator's message.
func Validate(v any) error {
	return validate.Struct(v)
}
