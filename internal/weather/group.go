package weather

// GroupByDay partitions records into calendar-day buckets. Records keep their
// relative order inside a bucket; buckets come out in first-seen order.
func GroupByDay(records []HourlyRecord) []DayBucket {
	index := make(map[string]int)
	var buckets []DayBucket

	for _, r := range records {
		k := dateKey(r.Date)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, DayBucket{Date: r.Date})
		}
		buckets[i].Hours = append(buckets[i].Hours, r)
	}

	return buckets
}
