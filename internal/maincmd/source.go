package maincmd

import (
	"os"
	"strings"

	"github.com/slothlang/sloth/lang/diag"
)

// linesPerFileBlock is the fixed padding unit the spec calls for when
// concatenating multiple source files into one translation unit: each file
// occupies a block of at least this many lines, so a diagnostic's global
// line number can be mapped back to its file and local line through the
// fileRange table loadSources records.
const linesPerFileBlock = 1000

// fileRange records which lines of the concatenated source came from path.
type fileRange struct {
	path      string
	startLine int
	endLine   int
}

// loadSources reads every path in order and concatenates their contents
// into a single in-memory source, padding each file out to a multiple of
// linesPerFileBlock lines.
func loadSources(paths []string) (string, []fileRange, error) {
	var b strings.Builder
	ranges := make([]fileRange, 0, len(paths))
	line := 1

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, err
		}

		content := string(data)
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		lineCount := strings.Count(content, "\n")

		block := linesPerFileBlock
		for block < lineCount {
			block += linesPerFileBlock
		}

		ranges = append(ranges, fileRange{path: path, startLine: line, endLine: line + lineCount - 1})
		b.WriteString(content)
		b.WriteString(strings.Repeat("\n", block-lineCount))
		line += block
	}

	return b.String(), ranges, nil
}

// locate maps a 1-based line number in the concatenated source back to the
// file and local line it originated from.
func locate(ranges []fileRange, globalLine int) (string, int) {
	for _, r := range ranges {
		if globalLine >= r.startLine && globalLine <= r.endLine {
			return r.path, globalLine - r.startLine + 1
		}
	}
	if len(ranges) == 0 {
		return "", globalLine
	}
	last := ranges[len(ranges)-1]
	return last.path, globalLine - last.startLine + 1
}

// diagnostic is one pipeline-stage failure reduced to a (file, line,
// message) triple ready for printing in the spec's fixed error form.
type diagnostic struct {
	path string
	line int
	msg  string
}

// diagnosticsFor reduces err into one diagnostic per underlying problem.
// diag.ErrorList entries carry a real source line that gets mapped through
// ranges; any other error (file I/O, an unimplemented-construct codegen
// error) has no line of its own, so it is reported against the last file in
// the batch at line 0.
func diagnosticsFor(err error, ranges []fileRange) []diagnostic {
	if err == nil {
		return nil
	}

	var list diag.ErrorList
	if errs, ok := err.(diag.ErrorList); ok {
		list = errs
	}

	if len(list) > 0 {
		out := make([]diagnostic, len(list))
		for i, e := range list {
			path, line := locate(ranges, e.Loc.Row)
			out[i] = diagnostic{path: path, line: line, msg: e.Msg}
		}
		return out
	}

	path := ""
	if len(ranges) > 0 {
		path = ranges[len(ranges)-1].path
	}
	return []diagnostic{{path: path, line: 0, msg: err.Error()}}
}
