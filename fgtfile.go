// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vgram

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedFGT is an FGT backed by a memory-mapped file rather than a heap
// allocation, following the teacher's mmapedIndexFile (indexfile.go): a
// multi-gigabyte FGT built offline by cmd/vgram's buildfgt subcommand can
// be queried without reading it into the process's heap.
type MappedFGT struct {
	*FGT
	file *os.File
	mm   mmap.MMap
}

// OpenFGT memory-maps path (as produced by WriteFGT) and parses its header
// in place. The returned MappedFGT must be closed with Close when no
// longer needed.
//
// OpenFGT is the other exported entry point a caller loading an
// untrusted on-disk blob calls through (alongside Unmarshal, which it
// wraps); a panic this call tree raises is recovered here with the
// partially-opened file/mapping cleaned up, and an *Error panic is
// returned as an error rather than crashing the caller. Any other panic
// is re-raised after the cleanup.
func OpenFGT(path string, minQ, maxQ int) (mf *MappedFGT, err error) {
	var f *os.File
	var m mmap.MMap

	defer func() {
		if r := recover(); r != nil {
			if m != nil {
				m.Unmap()
			}
			if f != nil {
				f.Close()
			}
			if e, ok := r.(*Error); ok {
				mf, err = nil, e
				return
			}
			panic(r)
		}
	}()

	f, err = os.Open(path)
	if err != nil {
		return nil, WrapError(InvalidParameter, err, "open fgt")
	}

	m, err = mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, WrapError(InvalidParameter, err, "mmap fgt")
	}

	fgt, err := Unmarshal(m, minQ, maxQ)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}

	return &MappedFGT{FGT: fgt, file: f, mm: m}, nil
}

// Close unmaps the file and releases its descriptor.
func (m *MappedFGT) Close() error {
	if err := m.mm.Unmap(); err != nil {
		m.file.Close()
		return WrapError(CorruptedInput, err, "unmap fgt")
	}
	return m.file.Close()
}

// WriteFGT writes fgt's packed representation to path, creating it (or
// truncating an existing file) with mode 0644.
func WriteFGT(path string, fgt *FGT) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return WrapError(InvalidParameter, err, "create fgt file")
	}
	defer f.Close()

	if _, err := f.Write(fgt.raw); err != nil {
		return WrapError(InvalidParameter, err, "write fgt file")
	}
	return f.Sync()
}
