// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveState saves the current time and primary variables of all cells to a
// file which name is set with tidx (time output index)
func (o *Domain) SaveState(tidx int) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.Data.Encoder)

	// encode state
	err = enc.Encode(o.T)
	if err != nil {
		return chk.Err("cannot encode Domain.T\n%v", err)
	}
	err = enc.Encode(o.Vars)
	if err != nil {
		return chk.Err("cannot encode Domain.Vars\n%v", err)
	}

	// save file
	fn := statePath(o.Sim.Data.DirOut, o.Sim.Data.Encoder, tidx)
	return saveFile(fn, &buf)
}

// ReadState reads the state saved with tidx, rebinding the decoded primary
// variables to this domain's configuration and refreshing the intensive
// quantities
func (o *Domain) ReadState(dir string, tidx int) (err error) {

	// open file
	fn := statePath(dir, o.Sim.Data.Encoder, tidx)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer fil.Close()

	// decode state
	dec := GetDecoder(fil, o.Sim.Data.Encoder)
	err = dec.Decode(&o.T)
	if err != nil {
		return chk.Err("cannot decode Domain.T\n%v", err)
	}
	err = dec.Decode(&o.Vars)
	if err != nil {
		return chk.Err("cannot decode Domain.Vars\n%v", err)
	}
	if len(o.Vars) != o.Ncells {
		return chk.Err("state file has %d cells but the domain has %d", len(o.Vars), o.Ncells)
	}

	// restore the references the encoders cannot carry
	for _, v := range o.Vars {
		v.Bind(o.Cfg, o.Sys, o.Lay)
	}
	return o.updateIqs()
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func statePath(dir, enctype string, tidx int) string {
	return path.Join(dir, io.Sf("state_%010d.%s", tidx, enctype))
}

func saveFile(filename string, buf *bytes.Buffer) (err error) {
	err = os.MkdirAll(path.Dir(filename), 0777)
	if err != nil {
		return
	}
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()
	_, err = fil.Write(buf.Bytes())
	return
}
