package entity

// Feature идентификатор экрана функции
type Feature string

const (
	FeatureModelStudio     Feature = "model-studio"
	FeatureProductShowcase Feature = "product-showcase"
	FeatureModelStyle      Feature = "model-style"
	FeatureCameraControl   Feature = "camera-control"
	FeaturePoseControl     Feature = "pose-control"
	FeatureExpression      Feature = "expression-control"
	FeatureGroupShot       Feature = "group-shot"

	FeatureGeneralRetouch Feature = "general-retouch"
	FeatureProductStudio  Feature = "product-studio"
	FeatureOutfitMatch    Feature = "outfit-match"
)

// FeatureInfo описание функции в каталоге
type FeatureInfo struct {
	ID          Feature
	Title       string
	Description string
	Host        Tab
}

var featureCatalog = []FeatureInfo{
	{FeatureModelStudio, "Model Studio", "AI-примерка на живой модели", TabHome},
	{FeatureProductShowcase, "Product Showcase", "Сцена для предметной съёмки", TabHome},
	{FeatureModelStyle, "Model Style", "Смена стиля модели", TabHome},
	{FeatureCameraControl, "Camera Control", "Управление ракурсом", TabHome},
	{FeaturePoseControl, "Pose Control", "Управление позой", TabHome},
	{FeatureExpression, "Expression Control", "Управление выражением лица", TabHome},
	{FeatureGroupShot, "Group Shot", "Групповой снимок из одного фото", TabHome},
	{FeatureGeneralRetouch, "General Retouch", "Улучшение качества, вырезание, удаление объектов", TabRetouch},
	{FeatureProductStudio, "Product Studio", "Профессиональный фон для товара", TabRetouch},
	{FeatureOutfitMatch, "Outfit Match", "Подбор образа и виртуальная примерка", TabRetouch},
}

// Features возвращает весь каталог
func Features() []FeatureInfo {
	out := make([]FeatureInfo, len(featureCatalog))
	copy(out, featureCatalog)
	return out
}

// FeaturesFor возвращает функции, которые открываются с вкладки
func FeaturesFor(tab Tab) []FeatureInfo {
	var out []FeatureInfo
	for _, f := range featureCatalog {
		if f.Host == tab {
			out = append(out, f)
		}
	}
	return out
}

// LookupFeature ищет функцию по идентификатору
func LookupFeature(id Feature) (FeatureInfo, bool) {
	for _, f := range featureCatalog {
		if f.ID == id {
			return f, true
		}
	}
	return FeatureInfo{}, false
}

// IsOverlay сообщает, что функция открывается слоем, а не экраном
func (f Feature) IsOverlay() bool {
	return f == FeatureGroupShot
}
