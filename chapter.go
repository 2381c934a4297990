package shlok

// Chapter describes one chapter of the work and how many verses it holds.
type Chapter struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	VerseCount int    `json:"verseCount"`
}

// Chapters is the ordered chapter table of the Bhagavad Gita.
// The order defines the cumulative offsets used to resolve global indices.
var Chapters = []Chapter{
	{1, "Arjuna Vishada Yoga", 47},
	{2, "Sankhya Yoga", 72},
	{3, "Karma Yoga", 43},
	{4, "Jnana Yoga", 42},
	{5, "Karma Sanyasa Yoga", 29},
	{6, "Dhyana Yoga", 47},
	{7, "Jnana Vijnana Yoga", 30},
	{8, "Aksara Brahma Yoga", 28},
	{9, "Raja Vidya Yoga", 34},
	{10, "Vibhuti Yoga", 42},
	{11, "Visvarupa Darsana Yoga", 55},
	{12, "Bhakti Yoga", 20},
	{13, "Ksetra Ksetrajna Vibhaga Yoga", 34},
	{14, "Gunatraya Vibhaga Yoga", 27},
	{15, "Purusottama Yoga", 20},
	{16, "Daivasura Sampad Vibhaga Yoga", 24},
	{17, "Sraddhatraya Vibhaga Yoga", 28},
	{18, "Moksha Sanyasa Yoga", 78},
}

// TotalVerses returns the number of verses across all chapters.
var TotalVerses = CountVerses(Chapters)

// CountVerses sums the verse counts of chapters.
func CountVerses(chapters []Chapter) int {
	total := 0
	for _, c := range chapters {
		total += c.VerseCount
	}
	return total
}

// ChapterStart returns the global index of the first verse of the chapter
// with the given number. Returns 0 if no such chapter exists.
func ChapterStart(chapters []Chapter, number int) int {
	cumulative := 0
	for _, c := range chapters {
		if c.Number == number {
			return cumulative + 1
		}
		cumulative += c.VerseCount
	}
	return 0
}
