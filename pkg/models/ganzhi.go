package models

// Stem is one of the 10 heavenly stems, indexed 0 (Gap, 甲) through 9 (Gye, 癸)
type Stem int

// Branch is one of the 12 earthly branches, indexed 0 (Ja, 子) through 11 (Hae, 亥)
type Branch int

// Element is one of the five elements
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Polarity is the yin/yang tag of a stem or branch
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

var stemKorean = [10]string{"Gap", "Eul", "Byeong", "Jeong", "Mu", "Gi", "Gyeong", "Sin", "Im", "Gye"}
var stemHanja = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branchKorean = [12]string{"Ja", "Chuk", "In", "Myo", "Jin", "Sa", "O", "Mi", "Sin", "Yu", "Sul", "Hae"}
var branchHanja = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// branchElements holds the fixed element of each branch
var branchElements = [12]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}

// Element returns the stem's element (stems pair up per element in cycle order)
func (s Stem) Element() Element { return Element(int(s) / 2) }

// Polarity returns Yang for even stems, Yin for odd
func (s Stem) Polarity() Polarity { return Polarity(int(s) % 2) }

func (s Stem) Korean() string { return stemKorean[int(s)] }
func (s Stem) Hanja() string  { return stemHanja[int(s)] }

func (s Stem) Valid() bool { return s >= 0 && s <= 9 }

// Element returns the branch's fixed element
func (b Branch) Element() Element { return branchElements[int(b)] }

// Polarity returns Yang for even branches, Yin for odd
func (b Branch) Polarity() Polarity { return Polarity(int(b) % 2) }

func (b Branch) Korean() string { return branchKorean[int(b)] }
func (b Branch) Hanja() string  { return branchHanja[int(b)] }

func (b Branch) Valid() bool { return b >= 0 && b <= 11 }

// Elements lists the five elements in cycle order; iterate this instead of
// ranging over maps where output order matters
var Elements = []Element{Wood, Fire, Earth, Metal, Water}

var elementNames = [5]string{"wood", "fire", "earth", "metal", "water"}

func (e Element) String() string { return elementNames[int(e)] }

// Generates reports whether e generates other in the production cycle
// (wood→fire→earth→metal→water→wood)
func (e Element) Generates(other Element) bool {
	return (int(e)+1)%5 == int(other)
}

// Controls reports whether e controls other in the control cycle
// (wood→earth→water→fire→metal→wood)
func (e Element) Controls(other Element) bool {
	return (int(e)+2)%5 == int(other)
}

// Pillar is a single stem-branch pair
type Pillar struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// GanzhiIndex returns the pillar's position in the 60-term sexagenary cycle,
// 0 = Gapja (甲子)
func (p Pillar) GanzhiIndex() int {
	// stem repeats every 10, branch every 12; their joint cycle is 60
	for i := 0; i < 60; i++ {
		if i%10 == int(p.Stem) && i%12 == int(p.Branch) {
			return i
		}
	}
	return -1
}

// PillarFromGanzhi builds the pillar for a sexagenary index (taken mod 60)
func PillarFromGanzhi(index int) Pillar {
	index = ((index % 60) + 60) % 60
	return Pillar{Stem: Stem(index % 10), Branch: Branch(index % 12)}
}

func (p Pillar) String() string {
	return p.Stem.Korean() + "-" + p.Branch.Korean()
}

// FourPillars is the complete pillar set for a birth instant.
// Hour is nil when the birth time is unknown.
type FourPillars struct {
	Year  Pillar  `json:"year"`
	Month Pillar  `json:"month"`
	Day   Pillar  `json:"day"`
	Hour  *Pillar `json:"hour,omitempty"`
}

// DayMaster returns the day stem, the reference point for all sibsin relations
func (fp FourPillars) DayMaster() Stem { return fp.Day.Stem }

// Pillars returns the present pillars in year→hour order
func (fp FourPillars) Pillars() []Pillar {
	ps := []Pillar{fp.Year, fp.Month, fp.Day}
	if fp.Hour != nil {
		ps = append(ps, *fp.Hour)
	}
	return ps
}

// Sibsin is the "ten gods" relation of a stem to the day master
type Sibsin int

const (
	SibsinBigyeon   Sibsin = iota // 比肩 peer, same element same polarity
	SibsinGeopjae                 // 劫財 rival, same element opposite polarity
	SibsinSiksin                  // 食神 output, generated same polarity
	SibsinSanggwan                // 傷官 output, generated opposite polarity
	SibsinPyeonjae                // 偏財 wealth, controlled same polarity
	SibsinJeongjae                // 正財 wealth, controlled opposite polarity
	SibsinPyeongwan               // 偏官 power, controlling same polarity
	SibsinJeonggwan               // 正官 power, controlling opposite polarity
	SibsinPyeonin                 // 偏印 resource, generating same polarity
	SibsinJeongin                 // 正印 resource, generating opposite polarity
)

var sibsinNames = [10]string{
	"bigyeon", "geopjae", "siksin", "sanggwan", "pyeonjae",
	"jeongjae", "pyeongwan", "jeonggwan", "pyeonin", "jeongin",
}

func (s Sibsin) String() string { return sibsinNames[int(s)] }

// TwelveStage is the cyclical life-stage position of a stem over a branch
type TwelveStage int

const (
	StageJangsaeng TwelveStage = iota // 長生 birth
	StageMokyok                       // 沐浴 bath
	StageGwandae                      // 冠帶 coming of age
	StageGeonrok                      // 建祿 prime office
	StageJewang                       // 帝旺 peak
	StageSoe                          // 衰 decline
	StageByeong                       // 病 illness
	StageSa                           // 死 death
	StageMyo                          // 墓 grave
	StageJeol                         // 絕 severance
	StageTae                          // 胎 conception
	StageYang                         // 養 nurture
)

var stageNames = [12]string{
	"jangsaeng", "mokyok", "gwandae", "geonrok", "jewang", "soe",
	"byeong", "sa", "myo", "jeol", "tae", "yang",
}

func (t TwelveStage) String() string { return stageNames[int(t)] }

// RelationKind classifies a detected relation between two branches or stems
type RelationKind string

const (
	RelationThreeHarmony RelationKind = "three_harmony" // 三合
	RelationSixHarmony   RelationKind = "six_harmony"   // 六合
	RelationClash        RelationKind = "clash"         // 沖
	RelationPunishment   RelationKind = "punishment"    // 刑
	RelationHarm         RelationKind = "harm"          // 害
	RelationStemCombine  RelationKind = "stem_combine"  // 天干合
)

// BranchRelation records one detected pairwise relation between pillar
// positions (indices into FourPillars.Pillars order)
type BranchRelation struct {
	Kind    RelationKind `json:"kind"`
	A       int          `json:"a"`
	B       int          `json:"b"`
	Element *Element     `json:"element,omitempty"` // resulting element for harmonies/combinations
}

// PillarAnalysis bundles the derived relational data for a pillar set
type PillarAnalysis struct {
	Pillars      FourPillars         `json:"pillars"`
	HiddenStems  map[Branch][]Stem   `json:"hidden_stems"`
	Sibsin       []Sibsin            `json:"sibsin"`        // per non-day pillar stem, pillar order
	Stages       []TwelveStage       `json:"twelve_stages"` // day master over each branch, pillar order
	Relations    []BranchRelation    `json:"relations"`
	ElementCount map[Element]float64 `json:"element_count"` // weighted, hidden stems included
	Daeun        []LuckCycle         `json:"daeun,omitempty"`
}

// LuckCycle is one 10-year luck pillar
type LuckCycle struct {
	StartAge int    `json:"start_age"`
	Pillar   Pillar `json:"pillar"`
}
