package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Write writes CLI output in the requested format (json or edn).
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteEDN targets the safe EDN subset our payloads need (maps, vectors,
// strings, numbers, booleans, nil). Structs round-trip through JSON first so
// json tags control field naming.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var buf bytes.Buffer
	writeEDNValue(&buf, x, 0, pretty)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func writeEDNValue(buf *bytes.Buffer, v any, level int, pretty bool) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case float64:
		if float64(int64(t)) == t {
			buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		writeEDNSeq(buf, '[', ']', len(t), level, pretty, func(buf *bytes.Buffer, i int) {
			writeEDNValue(buf, t[i], level+1, pretty)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		writeEDNSeq(buf, '{', '}', len(keys), level, pretty, func(buf *bytes.Buffer, i int) {
			buf.WriteByte(':')
			buf.WriteString(strings.ReplaceAll(strings.TrimSpace(keys[i]), " ", "-"))
			buf.WriteByte(' ')
			writeEDNValue(buf, t[keys[i]], level+1, pretty)
		})
	default:
		buf.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

func writeEDNSeq(buf *bytes.Buffer, opening, closing byte, n, level int, pretty bool, item func(*bytes.Buffer, int)) {
	buf.WriteByte(opening)
	if n == 0 {
		buf.WriteByte(closing)
		return
	}
	const indent = 2
	for i := 0; i < n; i++ {
		if pretty {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(" ", (level+1)*indent))
		} else if i > 0 {
			buf.WriteByte(' ')
		}
		item(buf, i)
	}
	if pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*indent))
	}
	buf.WriteByte(closing)
}
