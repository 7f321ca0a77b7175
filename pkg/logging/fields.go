package logging

import "time"

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

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Editor domain fields

func Component(name string) Field {
	return String("component", name)
}

// Node is a node index as seen by the editor.
func Node(index int) Field {
	return Int("node", index)
}

// Slot is a slot index within a node's input or output column.
func Slot(index int) Field {
	return Int("slot", index)
}

func LinkIndex(index int) Field {
	return Int("link", index)
}

// Mode is the interaction mode name.
func Mode(name string) Field {
	return String("mode", name)
}

func Op(op string) Field {
	return String("op", op)
}

// TxID identifies a document transaction.
func TxID(id string) Field {
	return String("tx", id)
}

func Reason(r string) Field {
	return String("reason", r)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
