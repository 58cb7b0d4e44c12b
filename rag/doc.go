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


// Package rag assembles vault context for AI conversations.
//
// The Builder runs a BM25 query against the cached vault index, pins
// today's journal ahead of the ranked results, and concatenates note
// blocks under a character budget. The result is injected into the
// assistant's system prompt so replies can draw on the user's own
// notes.
package rag
