package render

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultSpriteCacheSize is used when NewSprites receives a non-positive size
const defaultSpriteCacheSize = 64

// Sprite is a square radial falloff mask, Mask[y*Size+x] in [0,1]
type Sprite struct {
	Radius int
	Size   int
	Mask   []float64
}

// Sprites caches glow masks keyed by half-pixel quantized radius
// Glow radii change every frame with activation, quantizing keeps the working set small
type Sprites struct {
	cache *lru.Cache[int, *Sprite]
}

// NewSprites creates a sprite cache holding at most size masks
func NewSprites(size int) *Sprites {
	if size <= 0 {
		size = defaultSpriteCacheSize
	}
	cache, err := lru.New[int, *Sprite](size)
	if err != nil {
		// Only returned for non-positive sizes, excluded above
		panic(err)
	}
	return &Sprites{cache: cache}
}

// Get returns the mask for radius r, building it on a miss
func (s *Sprites) Get(r float64) *Sprite {
	key := int(math.Round(r * 2))
	if key < 1 {
		key = 1
	}
	if sp, ok := s.cache.Get(key); ok {
		return sp
	}
	sp := buildSprite(float64(key) / 2)
	s.cache.Add(key, sp)
	return sp
}

// Len returns the number of cached masks
func (s *Sprites) Len() int {
	return s.cache.Len()
}

// buildSprite computes a quadratic falloff: (1 - d/r)^2 inside r, 0 outside
func buildSprite(r float64) *Sprite {
	radius := int(math.Ceil(r))
	size := radius*2 + 1
	mask := make([]float64, size*size)
	for y := 0; y < size; y++ {
		dy := float64(y - radius)
		for x := 0; x < size; x++ {
			dx := float64(x - radius)
			d := math.Sqrt(dx*dx+dy*dy) / r
			if d >= 1 {
				continue
			}
			f := 1 - d
			mask[y*size+x] = f * f
		}
	}
	return &Sprite{Radius: radius, Size: size, Mask: mask}
}
