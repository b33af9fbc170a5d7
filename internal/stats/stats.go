// Package stats computes aggregates over a set of blogs.
package stats

import "github.com/sakif/bloglist/internal/model"

// AuthorCount pairs an author with how many blogs they have written.
type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with the total likes across their blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the like counts of all blogs.
func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// list. Ties go to the earliest blog in the slice.
func FavoriteBlog(blogs []model.Blog) *model.Blog {
	if len(blogs) == 0 {
		return nil
	}

	favorite := &blogs[0]
	for i := range blogs {
		if blogs[i].Likes > favorite.Likes {
			favorite = &blogs[i]
		}
	}
	return favorite
}

// MostBlogs returns the author with the largest number of blogs. The zero
// value is returned for an empty list; ties go to the first author to reach
// the maximum.
func MostBlogs(blogs []model.Blog) AuthorCount {
	counts := map[string]int{}
	var best AuthorCount

	for _, b := range blogs {
		counts[b.Author]++
		if counts[b.Author] > best.Blogs {
			best = AuthorCount{Author: b.Author, Blogs: counts[b.Author]}
		}
	}

	return best
}

// MostLikes returns the author whose blogs have accumulated the most likes.
// The zero value is returned for an empty list.
func MostLikes(blogs []model.Blog) AuthorLikes {
	likes := map[string]int{}
	var best AuthorLikes
	seeded := false

	for _, b := range blogs {
		likes[b.Author] += b.Likes
		if !seeded || likes[b.Author] > best.Likes {
			best = AuthorLikes{Author: b.Author, Likes: likes[b.Author]}
			seeded = true
		}
	}

	return best
}
