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


// Package ingestion extracts structured notes from conversation history
// and writes them into the vault. Extraction runs asynchronously after
// each exchange: recent messages are sent to the language model with an
// extraction prompt, the structured response is parsed into note blocks,
// and each block is merged into the vault with duplicate resolution so
// repeat topics append to their existing note instead of spawning
// near-identical files.
package ingestion
