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


// Package search provides BM25 full-text retrieval over vault notes.
//
// The Index type builds an in-memory inverted index from a map of
// note path to content and scores queries with BM25 (the same ranking
// function Elasticsearch uses). Only notes containing at least one
// query term are ever scored, so query cost grows with the number of
// matching notes, not the size of the vault.
//
// The Cache type wraps an Index with a time-to-live so repeated
// queries within a short window reuse the same snapshot, rebuilding
// from the note source only when the snapshot expires or a writer
// invalidates it.
package search
