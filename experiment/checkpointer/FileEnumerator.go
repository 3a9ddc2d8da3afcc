package checkpointer

import "fmt"

// fileEnumerator enumerates filenames
type fileEnumerator struct {
	i         int
	name      string
	extension string
	width     int
}

// filename returns the name of the next consecutive enumerated file
func (f *fileEnumerator) filename() string {
	name := fmt.Sprintf("%v%0*d%v", f.name, f.width, f.i, f.extension)
	f.i++
	return name
}

// FilenameEnumerator returns a function which returns filenames with a
// zero-padded counter suffix, starting at start. Each call increments
// the counter. The filename parameter is the full filename with its
// path, the width parameter is the minimum number of counter digits,
// and the extension parameter determines the file extension.
func FilenameEnumerator(start, width int, filename,
	extension string) func() string {
	enum := fileEnumerator{
		i:         start,
		name:      filename,
		extension: extension,
		width:     width,
	}

	return enum.filename
}
