// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
)

// NameLength is the size of the name field of a module header.
const NameLength = 16

// size of the header in bytes. name, major, minor, size
const headerLength = NameLength + 1 + 1 + 4

// Sentinel errors.
var (
	VersionUnsupported = errors.New("snapshot version unsupported")
	ErrTruncated       = errors.New("snapshot module truncated")
)

// Curated error patterns.
const (
	ModuleNotFound  = "snapshot: module not found (%s)"
	MalformedStream = "snapshot: malformed stream: %v"
)

// VersionError is returned when a module version cannot be read.
type VersionError struct {
	Module       string
	Major, Minor uint8

	// the version supported by the reader
	SupportedMajor, SupportedMinor uint8
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("snapshot: %s: version %d.%d is not supported (want %d.%d)",
		e.Module, e.Major, e.Minor, e.SupportedMajor, e.SupportedMinor)
}

// Is implements the errors.Is() interface.
func (e *VersionError) Is(target error) bool {
	return target == VersionUnsupported
}

// Module is a single named and versioned block of state.
type Module struct {
	name  string
	major uint8
	minor uint8
	data  []byte

	// read position and sticky read error
	offset int
	err    error
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Version returns the major and minor version numbers of the module.
func (m *Module) Version() (uint8, uint8) {
	return m.major, m.minor
}

// B writes a single byte to the module.
func (m *Module) B(v uint8) {
	m.data = append(m.data, v)
}

// W writes a 16 bit value to the module.
func (m *Module) W(v uint16) {
	m.data = binary.LittleEndian.AppendUint16(m.data, v)
}

// DW writes a 32 bit value to the module.
func (m *Module) DW(v uint32) {
	m.data = binary.LittleEndian.AppendUint32(m.data, v)
}

// QW writes a 64 bit value to the module.
func (m *Module) QW(v uint64) {
	m.data = binary.LittleEndian.AppendUint64(m.data, v)
}

// Bool writes a boolean as a single byte.
func (m *Module) Bool(v bool) {
	if v {
		m.B(1)
	} else {
		m.B(0)
	}
}

// BA writes a byte array. The length is not recorded.
func (m *Module) BA(v []uint8) {
	m.data = append(m.data, v...)
}

func (m *Module) next(n int) []byte {
	if m.err != nil {
		return nil
	}
	if m.offset+n > len(m.data) {
		m.err = ErrTruncated
		return nil
	}
	b := m.data[m.offset : m.offset+n]
	m.offset += n
	return b
}

// ReadB reads a single byte from the module.
func (m *Module) ReadB() uint8 {
	b := m.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadW reads a 16 bit value from the module.
func (m *Module) ReadW() uint16 {
	b := m.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// ReadDW reads a 32 bit value from the module.
func (m *Module) ReadDW() uint32 {
	b := m.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadQW reads a 64 bit value from the module.
func (m *Module) ReadQW() uint64 {
	b := m.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// ReadBool reads a boolean.
func (m *Module) ReadBool() bool {
	return m.ReadB() != 0
}

// ReadBA reads a byte array of length n. The returned slice is a copy.
func (m *Module) ReadBA(n int) []uint8 {
	b := m.next(n)
	if b == nil {
		return make([]uint8, n)
	}
	c := make([]uint8, n)
	copy(c, b)
	return c
}

// Err returns the first error encountered while reading the module.
func (m *Module) Err() error {
	if m.err != nil {
		return fmt.Errorf("snapshot: %s: %w", m.name, m.err)
	}
	return nil
}

// Writer collects modules in the order they are created.
type Writer struct {
	modules []*Module
}

// NewWriter is the preferred method of initialisation for the Writer type.
func NewWriter() *Writer {
	return &Writer{}
}

// Module adds a new module to the snapshot and returns it for writing.
func (w *Writer) Module(name string, major, minor uint8) *Module {
	if len(name) > NameLength {
		panic(fmt.Sprintf("snapshot: module name too long (%s)", name))
	}
	m := &Module{name: name, major: major, minor: minor}
	w.modules = append(w.modules, m)
	return m
}

// WriteTo implements the io.WriterTo interface.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	var n int64
	for _, m := range w.modules {
		var hdr [headerLength]byte
		copy(hdr[:NameLength], m.name)
		hdr[NameLength] = m.major
		hdr[NameLength+1] = m.minor
		binary.LittleEndian.PutUint32(hdr[NameLength+2:], uint32(len(m.data)))

		c, err := out.Write(hdr[:])
		n += int64(c)
		if err != nil {
			return n, curated.Errorf("snapshot: %v", err)
		}
		c, err = out.Write(m.data)
		n += int64(c)
		if err != nil {
			return n, curated.Errorf("snapshot: %v", err)
		}
	}
	return n, nil
}

// Bytes returns the snapshot as a byte slice.
func (w *Writer) Bytes() []byte {
	var b bytes.Buffer
	_, _ = w.WriteTo(&b)
	return b.Bytes()
}

// Reader gives access to the modules of a snapshot stream.
type Reader struct {
	modules map[string]*Module
	order   []string
}

// NewReader reads an entire snapshot stream.
func NewReader(in io.Reader) (*Reader, error) {
	r := &Reader{modules: make(map[string]*Module)}

	for {
		var hdr [headerLength]byte
		_, err := io.ReadFull(in, hdr[:])
		if err != nil {
			if errors.Is(err, io.EOF) {
				break // for loop
			}
			return nil, curated.Errorf(MalformedStream, err)
		}

		m := &Module{
			name:  strings.TrimRight(string(hdr[:NameLength]), "\x00"),
			major: hdr[NameLength],
			minor: hdr[NameLength+1],
		}
		m.data = make([]byte, binary.LittleEndian.Uint32(hdr[NameLength+2:]))
		_, err = io.ReadFull(in, m.data)
		if err != nil {
			return nil, curated.Errorf(MalformedStream, err)
		}

		if _, ok := r.modules[m.name]; ok {
			return nil, curated.Errorf(MalformedStream, fmt.Errorf("duplicate module %s", m.name))
		}
		r.modules[m.name] = m
		r.order = append(r.order, m.name)
	}

	return r, nil
}

// Modules returns the names of all modules in the order they were read.
func (r *Reader) Modules() []string {
	return r.order
}

// Has returns true if the named module is in the snapshot.
func (r *Reader) Has(name string) bool {
	_, ok := r.modules[name]
	return ok
}

// Module returns the named module for reading. The major version of the module
// must match and the minor version must be no newer than the version given.
func (r *Reader) Module(name string, major, minor uint8) (*Module, error) {
	m, ok := r.modules[name]
	if !ok {
		return nil, curated.Errorf(ModuleNotFound, name)
	}

	if m.major != major || m.minor > minor {
		return nil, &VersionError{
			Module:         name,
			Major:          m.major,
			Minor:          m.minor,
			SupportedMajor: major,
			SupportedMinor: minor,
		}
	}

	// rewind in case the module has been read before
	m.offset = 0
	m.err = nil

	return m, nil
}
