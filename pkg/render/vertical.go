package render

import (
	"fmt"
	"strings"

	"github.com/yaklabco/qdiff/pkg/bindiff"
)

// verticalIndent lines up right-only rows under the left-hand byte columns.
var verticalIndent = strings.Repeat(" ", 38)

// vertical prints one line per byte pair.
func (r *Renderer) vertical(ev bindiff.Event) error {
	o1, o2 := r.o1, r.o2
	color := r.pal.Color(ev.Kind)

	switch ev.Kind {
	case bindiff.KindMatch:
		for k := range ev.N {
			if err := r.verticalPair(o1+k, o2+k, color, ' '); err != nil {
				return err
			}
		}
	case bindiff.KindSubstitute:
		for k := range ev.N {
			if err := r.verticalPair(o1+k, o2+k, color, '!'); err != nil {
				return err
			}
		}
		for k := range ev.Del {
			if err := r.verticalLeft(o1+ev.N+k, color, '!'); err != nil {
				return err
			}
		}
		for k := range ev.Ins {
			if err := r.verticalRight(o2+ev.N+k, color, '!'); err != nil {
				return err
			}
		}
	case bindiff.KindDelete:
		for k := range ev.N {
			if err := r.verticalLeft(o1+k, color, '<'); err != nil {
				return err
			}
		}
	case bindiff.KindInsert:
		for k := range ev.N {
			if err := r.verticalRight(o2+k, color, '>'); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) verticalPair(o1, o2 int64, color string, mark byte) error {
	b1, b2 := r.s1.ByteAt(o1), r.s2.ByteAt(o2)
	return r.printf("0x%08X (%10d): %s%s %3d 0x%02X %c 0x%02X %3d %s%s :(%10d) 0x%08X\n",
		o1, o1, color, charName(b1, r.opts.ShowSpace), b1, b1, mark,
		b2, b2, charName(b2, r.opts.ShowSpace), r.pal.Normal, o2, o2)
}

func (r *Renderer) verticalLeft(o1 int64, color string, mark byte) error {
	b1 := r.s1.ByteAt(o1)
	return r.printf("0x%08X (%10d): %s%s %3d 0x%02X %c%s\n",
		o1, o1, color, charName(b1, r.opts.ShowSpace), b1, b1, mark, r.pal.Normal)
}

func (r *Renderer) verticalRight(o2 int64, color string, mark byte) error {
	b2 := r.s2.ByteAt(o2)
	return r.printf("%s%s%c 0x%02X %3d %s%s :(%10d) 0x%08X\n",
		verticalIndent, color, mark, b2, b2, charName(b2, r.opts.ShowSpace), r.pal.Normal, o2, o2)
}

// verticalRange prints the summary line of ev in vertical layout.
func (r *Renderer) verticalRange(ev bindiff.Event) error {
	color := r.pal.Color(ev.Kind)
	o1, o2 := r.o1, r.o2

	switch ev.Kind {
	case bindiff.KindMatch:
		return r.printf("0x%08X (%10d): %s%10d bytes match     %s :(%10d) 0x%08X\n",
			o1, o1, color, ev.N, r.pal.Normal, o2, o2)
	case bindiff.KindSubstitute:
		return r.printf("0x%08X (%10d): %s%10d subst %10d%s :(%10d) 0x%08X\n",
			o1, o1, color, ev.N+ev.Del, ev.N+ev.Ins, r.pal.Normal, o2, o2)
	case bindiff.KindDelete:
		return r.printf("0x%08X (%10d): %s%10d bytes deleted   %s\n",
			o1, o1, color, ev.N, r.pal.Normal)
	case bindiff.KindInsert:
		return r.printf("%s%s%10d bytes inserted  %s :(%10d) 0x%08X\n",
			verticalIndent[:25], color, ev.N, r.pal.Normal, o2, o2)
	}
	return nil
}

func (r *Renderer) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
