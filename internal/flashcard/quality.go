package flashcard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vytor/flashdeck/internal/errors"
)

// Quality is the self-assessed recall difficulty of a review.
type Quality int

const (
	Again Quality = iota + 1
	Hard
	Good
	Easy
)

var qualityNames = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}

func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

func (q Quality) IsValid() bool {
	return q >= Again && q <= Easy
}

// ParseQuality accepts "1".."4" or a label (again/hard/good/easy, any case).
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for q := Again; q <= Easy; q++ {
		if s == qualityNames[q] {
			return q, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return QualityFromInt(n)
	}
	return 0, errors.NewInvalidQualityError(strconv.Quote(s))
}

// QualityFromInt validates an integer rating.
func QualityFromInt(n int) (Quality, error) {
	q := Quality(n)
	if !q.IsValid() {
		return 0, errors.NewInvalidQualityError(n)
	}
	return q, nil
}

// Rating is the boundary form of a quality: a JSON number or a label string.
type Rating struct {
	Quality Quality
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		q, err := QualityFromInt(n)
		if err != nil {
			return err
		}
		r.Quality = q
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.NewInvalidQualityError(string(data))
	}
	q, err := ParseQuality(s)
	if err != nil {
		return err
	}
	r.Quality = q
	return nil
}

func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(r.Quality))
}
