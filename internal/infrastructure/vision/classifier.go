//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"brandcam-bot/internal/domain/entity"
)

// GoCVClassifier эвристически определяет категорию по форме крупнейшего контура.
type GoCVClassifier struct {
	MaxSide               int
	MinImageSide          int
	MinAreaRatio          float64
	MinSharpnessEdgeRatio float64
	MaxUnderexposedRatio  float64
	WideAspect            float64
	TallAspect            float64
	OuterAreaRatio        float64
}

// NewGoCVClassifier создаёт классификатор с порогами по умолчанию.
func NewGoCVClassifier() *GoCVClassifier {
	return &GoCVClassifier{
		MaxSide:               1024,
		MinImageSide:          200,
		MinAreaRatio:          0.02,
		MinSharpnessEdgeRatio: 0.004,
		MaxUnderexposedRatio:  0.6,
		WideAspect:            1.6,
		TallAspect:            0.6,
		OuterAreaRatio:        0.45,
	}
}

// Classify находит товар на снимке и относит его к категории.
func (c *GoCVClassifier) Classify(ctx context.Context, photo entity.Photo) (*entity.Classification, error) {
	if len(photo.Data) == 0 {
		return nil, fmt.Errorf("%w: photo has no pixel data", entity.ErrRecognitionFailed)
	}
	mat, err := decodeToMat(photo.Data)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	// Приводим изображение к стандартному размеру для стабильных порогов.
	if mat.Cols() > c.MaxSide || mat.Rows() > c.MaxSide {
		scale := float64(c.MaxSide) / float64(max(mat.Cols(), mat.Rows()))
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(int(float64(mat.Cols())*scale), int(float64(mat.Rows())*scale)), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	if err := c.checkImageQuality(mat, gray); err != nil {
		return nil, err
	}

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, 50, 150)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var best image.Rectangle
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		if rect.Dx()*rect.Dy() > best.Dx()*best.Dy() {
			best = rect
		}
	}

	total := mat.Cols() * mat.Rows()
	if best.Dy() == 0 || float64(best.Dx()*best.Dy()) < float64(total)*c.MinAreaRatio {
		return nil, fmt.Errorf("%w: no garment outline found", entity.ErrRecognitionFailed)
	}

	region := entity.Region{X: best.Min.X, Y: best.Min.Y, Width: best.Dx(), Height: best.Dy()}
	areaRatio := float64(region.Area()) / float64(total)
	return &entity.Classification{
		Category:   c.categorize(region, mat.Rows(), areaRatio),
		Region:     region,
		Confidence: areaRatio,
	}, nil
}

// categorize: широкий контур сверху считаем головным убором,
// снизу обувью, высокий брюками, крупный верхней одеждой.
func (c *GoCVClassifier) categorize(r entity.Region, rows int, areaRatio float64) entity.ProductCategory {
	aspect := float64(r.Width) / float64(r.Height)
	_, cy := r.Center()
	vertical := float64(cy) / float64(rows)

	switch {
	case aspect > c.WideAspect && vertical < 0.35:
		return entity.CategoryHat
	case aspect > c.WideAspect && vertical > 0.65:
		return entity.CategoryShoes
	case aspect < c.TallAspect:
		return entity.CategoryPants
	case areaRatio > c.OuterAreaRatio:
		return entity.CategoryOuter
	default:
		return entity.CategoryInner
	}
}

func (c *GoCVClassifier) checkImageQuality(mat, gray gocv.Mat) error {
	if mat.Cols() < c.MinImageSide || mat.Rows() < c.MinImageSide {
		return fmt.Errorf("%w: image is too small (%dx%d)", entity.ErrRecognitionFailed, mat.Cols(), mat.Rows())
	}

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 80, 160)
	if ratio := ratioOfMask(edges); ratio < c.MinSharpnessEdgeRatio {
		return fmt.Errorf("%w: image is blurry (edge_ratio=%.4f)", entity.ErrRecognitionFailed, ratio)
	}

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(gray, &dark, 20, 255, gocv.ThresholdBinaryInv)
	if ratio := ratioOfMask(dark); ratio > c.MaxUnderexposedRatio {
		return fmt.Errorf("%w: underexposed image (ratio=%.4f)", entity.ErrRecognitionFailed, ratio)
	}
	return nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.Join(entity.ErrRecognitionFailed, errors.New("failed to decode image"))
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}
