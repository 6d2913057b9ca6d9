package schema

import "sort"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Category is a food sub-category code. Codes are assigned by the backend and
// stable across environments.
type Category int

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	CategoryCoffee Category = iota + 1
	CategoryBeverage
	CategoryTea
	CategoryCake
	CategoryBakery
	CategoryIceCream
	CategoryHamburger
	CategoryPizza
	CategorySandwich
	CategoryToast
	CategoryVietnameseFood
	CategoryThaiFood
	CategoryIndianFood
	CategoryKoreanMeal
	CategoryPorridge
	CategoryNoodles
	CategoryMeat
	CategoryGrilled
	CategoryStew
	CategorySoupRice
	CategoryPorkFeet
	CategoryPorkCutlet
	CategorySashimi
	CategorySushi
	CategoryUdon
	CategorySoba
	CategoryTteokbokki
	CategoryKimbap
	CategoryRamen
	CategoryFriedFood
	CategoryFriedChicken
	CategorySeasonedChicken
	CategoryOvenRoasted
	CategoryJajangmyeon
	CategoryJjamppong
	CategorySweetSourPork
	CategoryMalatang
	CategorySteamed
	CategorySoup
	CategoryHotpot
)

// DefaultCategory is used when a new upload group is created without an
// explicit category.
const DefaultCategory = CategoryCoffee

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var categoryLabels = map[Category]string{
	CategoryCoffee:          "커피",
	CategoryBeverage:        "음료",
	CategoryTea:             "차",
	CategoryCake:            "케이크",
	CategoryBakery:          "베이커리",
	CategoryIceCream:        "아이스크림",
	CategoryHamburger:       "햄버거",
	CategoryPizza:           "피자",
	CategorySandwich:        "샌드위치",
	CategoryToast:           "토스트",
	CategoryVietnameseFood:  "베트남 음식",
	CategoryThaiFood:        "태국 음식",
	CategoryIndianFood:      "인도 음식",
	CategoryKoreanMeal:      "백반",
	CategoryPorridge:        "죽",
	CategoryNoodles:         "국수",
	CategoryMeat:            "고기",
	CategoryGrilled:         "구이",
	CategoryStew:            "찌개",
	CategorySoupRice:        "국밥",
	CategoryPorkFeet:        "족발",
	CategoryPorkCutlet:      "돈까스",
	CategorySashimi:         "회",
	CategorySushi:           "초밥",
	CategoryUdon:            "우동",
	CategorySoba:            "소바",
	CategoryTteokbokki:      "떡볶이",
	CategoryKimbap:          "김밥",
	CategoryRamen:           "라면",
	CategoryFriedFood:       "튀김",
	CategoryFriedChicken:    "후라이드",
	CategorySeasonedChicken: "양념치킨",
	CategoryOvenRoasted:     "오븐구이",
	CategoryJajangmyeon:     "짜장면",
	CategoryJjamppong:       "짬뽕",
	CategorySweetSourPork:   "탕수육",
	CategoryMalatang:        "마라탕",
	CategorySteamed:         "찜",
	CategorySoup:            "탕",
	CategoryHotpot:          "전골",
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Valid returns true when the category code is known.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for the category, or empty string when the
// code is unknown.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Group returns the top-level category label the sub-category belongs to.
func (c Category) Group() string {
	switch {
	case !c.Valid():
		return ""
	case c <= CategoryToast:
		return "카페·디저트"
	default:
		return "음식점"
	}
}

// Categories returns all known category codes in ascending order.
func Categories() []Category {
	result := make([]Category, 0, len(categoryLabels))
	for c := range categoryLabels {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
