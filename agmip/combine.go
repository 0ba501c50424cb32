package agmip

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var ErrNotYearPath = errors.New("file name has no year range")

var yearPathRe = regexp.MustCompile(`^(?P<base>.*)_(?P<start>[0-9]{4})_(?P<end>[0-9]{4})\.(?P<ext>\w{1,3})`)

type YearRange struct {
	Start, End int
}

// YearPath is a file name of the form <base>_<start>_<end>.<ext>.
type YearPath struct {
	Base  string
	Years YearRange
	Ext   string
}

func ParseYearPath(path string) (YearPath, error) {
	m := yearPathRe.FindStringSubmatch(path)
	if m == nil {
		return YearPath{}, fmt.Errorf("%q: %w", path, ErrNotYearPath)
	}
	start, _ := strconv.Atoi(m[yearPathRe.SubexpIndex("start")])
	end, _ := strconv.Atoi(m[yearPathRe.SubexpIndex("end")])
	return YearPath{
		Base:  m[yearPathRe.SubexpIndex("base")],
		Years: YearRange{Start: start, End: end},
		Ext:   m[yearPathRe.SubexpIndex("ext")],
	}, nil
}

// IsContiguous reports whether each range starts the year after the
// previous one ends.
func IsContiguous(ranges []YearRange) bool {
	for i := 1; i < len(ranges); i++ {
		if ranges[i-1].End+1 != ranges[i].Start {
			return false
		}
	}
	return true
}

type CombineInfo struct {
	StartYear int
	EndYear   int
	FileName  string
	Base      string
}

// Combine describes the file that joining paths end to end would produce.
// ok is false when a path has no year range or the ranges leave gaps.
func Combine(paths []string) (info CombineInfo, ok bool) {
	if len(paths) == 0 {
		return CombineInfo{}, false
	}
	ranges := make([]YearRange, 0, len(paths))
	for _, p := range paths {
		yp, err := ParseYearPath(p)
		if err != nil {
			return CombineInfo{}, false
		}
		ranges = append(ranges, yp.Years)
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})
	if !IsContiguous(ranges) {
		return CombineInfo{}, false
	}

	first, _ := ParseYearPath(filepath.Base(paths[0]))
	info = CombineInfo{
		StartYear: ranges[0].Start,
		EndYear:   ranges[len(ranges)-1].End,
		Base:      first.Base,
	}
	info.FileName = fmt.Sprintf("%s_%d_%d.%s", first.Base, info.StartYear, info.EndYear, first.Ext)
	return info, true
}

// CacheKey identifies a set of inputs regardless of order.
func CacheKey(inputs []string) string {
	sorted := append([]string(nil), inputs...)
	sort.Strings(sorted)
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(sorted, "\x00")), 16)
}
