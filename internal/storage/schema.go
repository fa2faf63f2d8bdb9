/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"mapmeasure/internal/domain"
)

// sessionSchema is the canonical JSON Schema for the session document.
//
//go:embed session.schema.json
var sessionSchema []byte

// SessionSchema returns the embedded JSON Schema bytes for the session document.
func SessionSchema() []byte { return sessionSchema }

// ValidateDocumentBytes checks raw session JSON against the embedded schema.
// Validation failures wrap domain.ErrImportValidation and list the offending fields.
func ValidateDocumentBytes(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(sessionSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImportValidation, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", domain.ErrImportValidation, strings.Join(msgs, "; "))
	}
	return nil
}

// DecodeDocument validates raw session JSON against the embedded schema and
// unmarshals it into a Document. This is the entry point for untrusted input.
func DecodeDocument(data []byte) (domain.Document, error) {
	var doc domain.Document
	if err := ValidateDocumentBytes(data); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: %v", domain.ErrImportValidation, err)
	}
	return doc, nil
}
