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


// Package vault provides filesystem access to a collection of markdown
// notes. A Vault lists, reads, and writes notes relative to a root
// directory, skipping internal folders. Reads are best-effort: a note
// that cannot be read is omitted rather than failing the batch.
//
// The package also owns the daily journal naming rules and a
// fsnotify-based watcher that reports note changes on disk.
package vault
