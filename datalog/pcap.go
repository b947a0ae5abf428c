/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package datalog

import (
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"time"
)

const (
	// pcapMagic is the classic little-endian capture magic with
	// microsecond timestamps.
	pcapMagic = 0xa1b2c3d4
	// pcapVersionMajor and pcapVersionMinor identify the classic 2.4
	// capture layout.
	pcapVersionMajor = 2
	pcapVersionMinor = 4
	// pcapSnapLen accepts full payloads.
	pcapSnapLen = 0x0000FFFF
	// pcapLinkUser0 is LINKTYPE_USER0; each record payload starts with
	// one direction byte under this link type.
	pcapLinkUser0 = 147

	// dirByteRX and dirByteTX lead each record payload so a reader can
	// demultiplex the two directions.
	dirByteRX = 0x00
	dirByteTX = 0x01
)

// pcapGlobalHeader renders the 24-byte capture file header.
func pcapGlobalHeader() []byte {
	h := make([]byte, 24)

	binary.LittleEndian.PutUint32(h[0:], pcapMagic)
	binary.LittleEndian.PutUint16(h[4:], pcapVersionMajor)
	binary.LittleEndian.PutUint16(h[6:], pcapVersionMinor)
	// thiszone and sigfigs stay zero
	binary.LittleEndian.PutUint32(h[16:], pcapSnapLen)
	binary.LittleEndian.PutUint32(h[20:], pcapLinkUser0)

	return h
}

// pcapRecord renders one 16-byte record header plus the payload, led by
// its direction byte.
func pcapRecord(dir Direction, ts time.Time, p []byte) []byte {
	var (
		n = len(p) + 1
		h = make([]byte, 16, 16+n)
	)

	binary.LittleEndian.PutUint32(h[0:], uint32(ts.Unix()))
	binary.LittleEndian.PutUint32(h[4:], uint32(ts.Nanosecond()/1000))
	binary.LittleEndian.PutUint32(h[8:], uint32(n))
	binary.LittleEndian.PutUint32(h[12:], uint32(n))

	b := dirByteRX
	if dir == DirTX {
		b = dirByteTX
	}

	h = append(h, byte(b))
	return append(h, p...)
}

// compressFile gzips src into dst.
func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	zw := gzip.NewWriter(out)

	if _, err = io.Copy(zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		return err
	}

	if err = zw.Close(); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
