package crawler

import "time"

// Kind selects which content vertical a crawl targets.
type Kind string

const (
	KindDrama Kind = "drama"
	KindKpop  Kind = "kpop"
)

func (k Kind) IsValid() bool {
	return k == KindDrama || k == KindKpop
}

func (k Kind) String() string {
	return string(k)
}

// DramaKeywords seed the drama filming-location crawl. Each keyword is sent
// to the tour API as-is, so they stay in Korean.
var DramaKeywords = []string{
	"드라마 촬영지",
	"사랑의 불시착 촬영지",
	"도깨비 촬영지",
	"이태원 클라쓰 촬영지",
	"태양의 후예 촬영지",
	"겨울연가 촬영지",
	"별에서 온 그대 촬영지",
	"오징어 게임 촬영지",
	"킹덤 촬영지",
	"미스터 션샤인 촬영지",
}

// KpopKeywords seed the k-pop landmark crawl.
var KpopKeywords = []string{
	"케이팝 성지",
	"BTS 촬영지",
	"SM타운",
	"하이브 인사이트",
	"K-POP 거리",
	"아이돌 팬 카페 거리",
	"강남 케이스타 로드",
}

// Result summarizes one crawl run.
type Result struct {
	Keywords int `json:"keywords"`
	Found    int `json:"found"`
	Created  int `json:"created"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// RunStatus is the last known outcome for one crawl kind, kept in the cache
// so the API can report it without touching the worker.
type RunStatus struct {
	Kind       Kind      `json:"kind"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Result     Result    `json:"result"`
}
