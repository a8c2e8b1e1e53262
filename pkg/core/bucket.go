package core

// TimeBucket selects the granularity of temporal aggregation.
type TimeBucket string

// Supported time buckets.
const (
	BucketDay   TimeBucket = "day"
	BucketMonth TimeBucket = "month"
	BucketYear  TimeBucket = "year"
)

// AllTimeBuckets returns the supported buckets from finest to coarsest.
func AllTimeBuckets() []TimeBucket {
	return []TimeBucket{BucketDay, BucketMonth, BucketYear}
}

// String returns the bucket name.
func (b TimeBucket) String() string {
	return string(b)
}

// Valid reports whether b is one of the supported buckets.
func (b TimeBucket) Valid() bool {
	switch b {
	case BucketDay, BucketMonth, BucketYear:
		return true
	default:
		return false
	}
}

// ParseTimeBucket converts s to a TimeBucket.
// Matching is case-sensitive: "Day" is rejected.
func ParseTimeBucket(s string) (TimeBucket, error) {
	b := TimeBucket(s)
	if !b.Valid() {
		return "", &InvalidInputError{
			Field:   "distribution",
			Value:   s,
			Message: "must be one of 'day', 'month' or 'year'",
		}
	}
	return b, nil
}
