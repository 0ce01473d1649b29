package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Pipeline field helpers for common annotation concepts
func Pass(name string) Field {
	return String("pass", name)
}

func Phase(name string) Field {
	return String("phase", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func NetName(name string) Field {
	return String("net", name)
}

func BlockName(name string) Field {
	return String("block", name)
}

func PbPath(path string) Field {
	return String("pb", path)
}

func Coord(x, y int) Field {
	return Field{Key: "coord", Value: [2]int{x, y}}
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
