// Copyright 2025 Hyphal Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vault

import "errors"

var (
	// ErrRootRequired is returned when a vault root directory is not provided.
	ErrRootRequired = errors.New("vault root required")

	// ErrNoteNotFound indicates that no note exists at the requested path.
	ErrNoteNotFound = errors.New("note not found")

	// ErrUnknownJournalFormat indicates an unrecognized journal filename format id.
	ErrUnknownJournalFormat = errors.New("unknown journal format")
)
