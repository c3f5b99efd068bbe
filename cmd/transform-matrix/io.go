package main

// This file defines the TSV surface of transform-matrix. The input is one
// read per line:
//
//   name  mapq  source  sample  pos:allele[,pos:allele...]
//
// Lines starting with '#' are skipped. The transformed matrix is written one
// variant per line (name, sample, source, position, cluster, quality vector),
// and the cluster counts as one count per line. Paths ending in .gz are
// gzip-compressed.

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"

	"github.com/haplotools/polyphase/readset"
)

func parseReadLine(line string) (*readset.Read, error) {
	cols := strings.Split(line, "\t")
	if len(cols) != 5 {
		return nil, errors.E("expected 5 columns, got", len(cols))
	}
	mapq, err := strconv.Atoi(cols[1])
	if err != nil {
		return nil, errors.E(err, "bad mapq:", cols[1])
	}
	source, err := strconv.Atoi(cols[2])
	if err != nil {
		return nil, errors.E(err, "bad source id:", cols[2])
	}
	sample, err := strconv.Atoi(cols[3])
	if err != nil {
		return nil, errors.E(err, "bad sample id:", cols[3])
	}
	read := readset.NewRead(cols[0], mapq, source, sample)
	prev := -1
	for _, field := range strings.Split(cols[4], ",") {
		parts := strings.SplitN(field, ":", 2)
		if len(parts) != 2 {
			return nil, errors.E("bad variant field:", field)
		}
		pos, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errors.E(err, "bad position:", parts[0])
		}
		allele, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, errors.E(err, "bad allele:", parts[1])
		}
		if pos <= prev {
			return nil, errors.E("variant positions not strictly increasing at", pos)
		}
		prev = pos
		read.AddVariant(pos, allele, []int{mapq})
	}
	return read, nil
}

func readMatrixFrom(r io.Reader) (*readset.ReadSet, error) {
	reads := readset.New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		read, err := parseReadLine(line)
		if err != nil {
			return nil, errors.E(err, "line", lineno)
		}
		reads.Add(read)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reads, nil
}

func readMatrix(ctx context.Context, path string) (*readset.ReadSet, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	defer in.Close(ctx) // nolint: errcheck
	var r io.Reader = in.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.E(err, "gzip", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	return readMatrixFrom(r)
}

func writeMatrixTo(w io.Writer, matrix *readset.ReadSet) error {
	out := tsv.NewWriter(w)
	out.WriteString("#NAME\tSAMPLE\tSOURCE\tPOS\tCLUSTER\tQUALITY")
	if err := out.EndLine(); err != nil {
		return err
	}
	for i := 0; i < matrix.Len(); i++ {
		read := matrix.Get(i)
		for _, v := range read.Variants {
			out.WriteString(read.Name)
			out.WriteString(strconv.Itoa(read.SampleID))
			out.WriteString(strconv.Itoa(read.SourceID))
			out.WriteString(strconv.Itoa(v.Position))
			out.WriteString(strconv.Itoa(v.Allele))
			quality := make([]string, len(v.Quality))
			for q, cost := range v.Quality {
				quality[q] = strconv.Itoa(cost)
			}
			out.WriteString(strings.Join(quality, ","))
			if err := out.EndLine(); err != nil {
				return err
			}
		}
	}
	return out.Flush()
}

func writeCountsTo(w io.Writer, counts []int) error {
	out := tsv.NewWriter(w)
	out.WriteString("#CLUSTERS")
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, c := range counts {
		out.WriteString(strconv.Itoa(c))
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

// createAndWrite creates path (gzip-compressing for .gz paths) and runs write
// against it.
func createAndWrite(ctx context.Context, path string, write func(io.Writer) error) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	var w io.Writer = out.Writer(ctx)
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(w)
		w = gz
	}
	if err := write(w); err != nil {
		out.Close(ctx) // nolint: errcheck
		return errors.E(err, "write", path)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			out.Close(ctx) // nolint: errcheck
			return errors.E(err, "gzip close", path)
		}
	}
	return out.Close(ctx)
}
