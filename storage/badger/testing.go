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


package badger

import "github.com/hyphal/mycelia/storage"

// NewMemoryRepositories creates in-memory chat and checkpoint repositories
// for testing. Caller must close the backend when done.
func NewMemoryRepositories() (storage.ChatRepository, storage.CheckpointRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	chatRepo := NewChatRepository(backend)
	checkpointRepo := NewCheckpointRepository(backend)

	return chatRepo, checkpointRepo, backend, nil
}
