package graph

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Input yields a reader over the graph file and a closer for it. The loaders
// may call it more than once (sizing pass then loading pass).
type Input func() (io.Reader, func())

type ErrorList []error

func (self ErrorList) Error() string {
	var s []string
	for _, err := range self {
		s = append(s, err.Error())
	}
	return "Errors [" + strings.Join(s, ", ") + "]"
}

// LoadVeg reads the line oriented veg format: each line is either
// "vertex\t{json}" or "edge\t{json}". Vertex objects carry "id" and "label",
// edge objects carry "src", "targ", and "label". External ids may be sparse;
// they are remapped to dense ids in file order.
func LoadVeg(input Input) (*Graph, error) {
	var errs ErrorList
	V, E, err := vegSize(input)
	if err != nil {
		return nil, err
	}
	b := Build(V, E)
	vids := make(map[int64]int32, V)

	in, closer := input()
	defer closer()
	err = processLines(in, func(line []byte) {
		if len(line) == 0 || !bytes.Contains(line, []byte("\t")) {
			return
		}
		lineType, data := parseLine(line)
		switch lineType {
		case "vertex":
			if err := loadVegVertex(b, vids, data); err != nil {
				errs = append(errs, err)
			}
		case "edge":
			if err := loadVegEdge(b, vids, data); err != nil {
				errs = append(errs, err)
			}
		default:
			errs = append(errs, errors.Errorf("Unknown line type %v", lineType))
		}
	})
	if err != nil {
		return nil, err
	}
	if len(errs) != 0 {
		return nil, errs
	}
	return b.Build(), nil
}

func loadVegVertex(b *Builder, vids map[int64]int32, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	id, err := obj["id"].(json.Number).Int64()
	if err != nil {
		return err
	}
	label := strings.TrimSpace(obj["label"].(string))
	if _, has := vids[id]; has {
		return errors.Errorf("duplicate vertex id %v", id)
	}
	vids[id] = b.AddVertex(label).Id
	return nil
}

func loadVegEdge(b *Builder, vids map[int64]int32, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	src, err := obj["src"].(json.Number).Int64()
	if err != nil {
		return err
	}
	targ, err := obj["targ"].(json.Number).Int64()
	if err != nil {
		return err
	}
	label := ""
	if l, has := obj["label"]; has {
		label = strings.TrimSpace(l.(string))
	}
	u, has := vids[src]
	if !has {
		return errors.Errorf("edge src %v is not a loaded vertex", src)
	}
	v, has := vids[targ]
	if !has {
		return errors.Errorf("edge targ %v is not a loaded vertex", targ)
	}
	return b.AddEdge(u, v, label)
}

func processLines(in io.Reader, process func([]byte)) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		unsafe := scanner.Bytes()
		line := make([]byte, len(unsafe))
		copy(line, unsafe)
		process(line)
	}
	return scanner.Err()
}

func parseJson(data []byte) (obj map[string]interface{}, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseLine(line []byte) (lineType string, data []byte) {
	split := bytes.Split(line, []byte("\t"))
	return strings.TrimSpace(string(split[0])), bytes.TrimSpace(split[1])
}

func vegSize(input Input) (V, E int, err error) {
	in, closer := input()
	defer closer()
	err = processLines(in, func(line []byte) {
		if bytes.HasPrefix(line, []byte("vertex")) {
			V++
		} else if bytes.HasPrefix(line, []byte("edge")) {
			E++
		}
	})
	if err != nil {
		return 0, 0, err
	}
	return V, E, nil
}
