package entity

// Region область снимка, где найден товар
type Region struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// Center возвращает координаты центра области
func (r Region) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Area возвращает площадь области
func (r Region) Area() int {
	return r.Width * r.Height
}

// Classification результат распознавания снимка
type Classification struct {
	Category   ProductCategory
	Region     Region
	Confidence float64
}
