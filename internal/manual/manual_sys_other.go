// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !cgo && !unix

package manual

const sysAllocEnabled = false

func sysAlloc(n uintptr) Buf { return Buf{} }

func sysFree(b Buf) {}
