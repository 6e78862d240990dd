package store

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Document Store Suite")
}

var _ = Describe("DocumentStore", func() {
	var (
		path     string
		docStore *DocumentStore
	)

	BeforeEach(func() {
		dir, err := os.MkdirTemp("", "store-test")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		path = filepath.Join(dir, "db.json")
		docStore = NewDocumentStore(path)
	})

	Describe("Load", func() {
		It("returns an empty document when the file does not exist", func() {
			doc, err := docStore.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Admins).To(BeEmpty())
			Expect(doc.Users).To(BeEmpty())
			Expect(doc.Collections).To(BeEmpty())
		})

		It("fails with ErrCorrupt when the file is not valid JSON", func() {
			Expect(os.WriteFile(path, []byte("{not json"), 0644)).To(Succeed())

			_, err := docStore.Load()
			Expect(err).To(MatchError(ErrCorrupt))
		})
	})

	Describe("Update", func() {
		It("persists typed collections and round-trips unknown ones", func() {
			seed := `{
				"admins": [{"id": 1, "email": "a@x.com", "password": "h", "role": "admin", "created_at": "2024-01-01T00:00:00Z"}],
				"users": [],
				"posts": [{"id": 7, "title": "hello"}]
			}`
			Expect(os.WriteFile(path, []byte(seed), 0644)).To(Succeed())

			err := docStore.Update(func(doc *Document) error {
				doc.Users = append(doc.Users, User{
					ID:        doc.NextUserID(),
					Name:      "Bob",
					Email:     "b@x.com",
					Status:    "Active",
					CreatedAt: time.Now(),
				})
				return nil
			})
			Expect(err).NotTo(HaveOccurred())

			doc, err := docStore.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Admins).To(HaveLen(1))
			Expect(doc.Users).To(HaveLen(1))
			Expect(doc.Users[0].ID).To(Equal(int64(1)))

			// unknown collection survived the rewrite untouched
			Expect(doc.Collections).To(HaveKey("posts"))
			id, ok := RecordID(doc.Collections["posts"][0])
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(int64(7)))
		})

		It("discards the mutation when fn returns an error", func() {
			err := docStore.Update(func(doc *Document) error {
				doc.Users = append(doc.Users, User{ID: 1, Email: "x@x.com"})
				return os.ErrInvalid
			})
			Expect(err).To(MatchError(os.ErrInvalid))

			doc, err := docStore.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Users).To(BeEmpty())
		})

		It("does not lose updates under concurrent writers", func() {
			const writers = 20

			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					err := docStore.Update(func(doc *Document) error {
						id := doc.NextUserID()
						doc.Users = append(doc.Users, User{
							ID:     id,
							Email:  "user" + strconv.FormatInt(id, 10) + "@x.com",
							Status: "Active",
						})
						return nil
					})
					Expect(err).NotTo(HaveOccurred())
				}()
			}
			wg.Wait()

			doc, err := docStore.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Users).To(HaveLen(writers))
		})
	})

	Describe("Document ids", func() {
		It("assigns monotonic ids past the current maximum", func() {
			doc := NewDocument()
			Expect(doc.NextUserID()).To(Equal(int64(1)))

			doc.Users = append(doc.Users, User{ID: 41})
			Expect(doc.NextUserID()).To(Equal(int64(42)))

			doc.Admins = append(doc.Admins, Admin{ID: 3})
			Expect(doc.NextAdminID()).To(Equal(int64(4)))

			doc.Collections["posts"] = []Record{{"id": float64(9)}}
			Expect(doc.NextRecordID("posts")).To(Equal(int64(10)))
			Expect(doc.NextRecordID("missing")).To(Equal(int64(1)))
		})
	})

	Describe("Collection views", func() {
		It("exposes typed collections as schemaless records and back", func() {
			doc := NewDocument()
			doc.Users = []User{{ID: 1, Name: "Bob", Email: "b@x.com", Status: "Active", Permissions: []string{}}}

			records, err := doc.Collection("users")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0]["name"]).To(Equal("Bob"))

			records[0]["name"] = "Robert"
			Expect(doc.SetCollection("users", records)).To(Succeed())
			Expect(doc.Users[0].Name).To(Equal("Robert"))
		})
	})
})
