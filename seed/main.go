// Command seed populates the database with a small set of demo profiles,
// posts and connections. It is idempotent: users are upserted by their
// identity subject and their previous demo posts are replaced.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monk-io/network-nexus-project/src/config"
	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/models"
	"github.com/monk-io/network-nexus-project/src/repository"
)

type seedUser struct {
	sub     string
	profile models.UserUpsert
}

var seedUsers = []seedUser{
	{
		sub: "auth0|seeduser1",
		profile: models.UserUpsert{
			Username:  "alex-chen",
			Name:      "Alex Chen",
			Headline:  "Software Engineer @ TechCorp",
			AvatarURL: "https://i.pravatar.cc/150?u=alex",
			Location:  "San Francisco, CA",
		},
	},
	{
		sub: "auth0|seeduser2",
		profile: models.UserUpsert{
			Username:  "jordan-lee",
			Name:      "Jordan Lee",
			Headline:  "Product Manager | Innovate Solutions",
			AvatarURL: "https://i.pravatar.cc/150?u=jordan",
			Location:  "New York, NY",
		},
	},
	{
		sub: "auth0|seeduser3",
		profile: models.UserUpsert{
			Username:  "sam-taylor",
			Name:      "Sam Taylor",
			Headline:  "UX Designer - Creative Minds Agency",
			AvatarURL: "https://i.pravatar.cc/150?u=sam",
			Location:  "London, UK",
		},
	},
	{
		sub: "auth0|seeduser4",
		profile: models.UserUpsert{
			Username:  "morgan-riley",
			Name:      "Morgan Riley",
			Headline:  "Data Scientist | Future AI",
			AvatarURL: "https://i.pravatar.cc/150?u=morgan",
			Location:  "Austin, TX",
		},
	},
	{
		sub: "auth0|seeduser5",
		profile: models.UserUpsert{
			Username:  "casey-garcia",
			Name:      "Casey Garcia",
			Headline:  "Marketing Lead at Growth Co.",
			AvatarURL: "https://i.pravatar.cc/150?u=casey",
			Location:  "Berlin, Germany",
		},
	},
}

var seedPosts = []struct {
	authorSub string
	content   string
}{
	{
		authorSub: "auth0|seeduser1",
		content:   "Excited to share that our latest feature just shipped! Big thanks to the team for the hard work. #softwaredevelopment #techcorp",
	},
	{
		authorSub: "auth0|seeduser2",
		content:   "Just finished roadmap planning for Q3. Lots of exciting things coming! How do you approach product prioritization? #productmanagement #innovation",
	},
	{
		authorSub: "auth0|seeduser3",
		content:   "Deep dive into user feedback today. Always insightful to see how people interact with the designs. #uxdesign #userresearch",
	},
	{
		authorSub: "auth0|seeduser4",
		content:   "The results from the latest A/B test on our model are fascinating! Sometimes the data really surprises you. #datascience #machinelearning",
	},
	{
		authorSub: "auth0|seeduser5",
		content:   "Wrapping up a successful campaign launch! Metrics are looking great. What are your favorite tools for campaign tracking? #marketing #growthhacking",
	},
	{
		authorSub: "auth0|seeduser1",
		content:   "Spent the morning debugging a tricky issue. That feeling when you finally find the root cause... priceless!",
	},
	{
		authorSub: "auth0|seeduser2",
		content:   "Attended a great webinar on agile methodologies today. Always learning! #agile #projectmanagement",
	},
}

// Pairs of seed users to link up so the demo feed is not empty
var seedConnections = [][2]string{
	{"auth0|seeduser1", "auth0|seeduser2"},
	{"auth0|seeduser1", "auth0|seeduser3"},
	{"auth0|seeduser2", "auth0|seeduser4"},
	{"auth0|seeduser3", "auth0|seeduser5"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	lib.SetupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := lib.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect MongoDB client")
		}
	}()

	db := client.Database(cfg.MongoDB)

	if err := lib.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	connections := repository.NewConnectionRepository(db)

	userIDs := make(map[string]primitive.ObjectID, len(seedUsers))
	for _, su := range seedUsers {
		user, err := users.Upsert(ctx, su.sub, su.profile)
		if err != nil {
			log.Fatal().Err(err).Str("sub", su.sub).Msg("Failed to upsert seed user")
		}
		userIDs[su.sub] = user.Id
	}
	log.Info().Int("count", len(userIDs)).Msg("Seed users upserted")

	// Replace the demo posts rather than stacking them on every run
	authorIDs := make([]primitive.ObjectID, 0, len(userIDs))
	for _, id := range userIDs {
		authorIDs = append(authorIDs, id)
	}
	if _, err := db.Collection("posts").DeleteMany(ctx, bson.M{"author": bson.M{"$in": authorIDs}}); err != nil {
		log.Fatal().Err(err).Msg("Failed to clear previous seed posts")
	}

	created := 0
	for _, sp := range seedPosts {
		authorID, ok := userIDs[sp.authorSub]
		if !ok {
			log.Warn().Str("sub", sp.authorSub).Msg("No seed user for post, skipping")
			continue
		}

		post := &models.Post{Author: authorID, Content: sp.content}
		if err := posts.Create(ctx, post); err != nil {
			log.Fatal().Err(err).Str("sub", sp.authorSub).Msg("Failed to create seed post")
		}
		created++
	}
	log.Info().Int("count", created).Msg("Seed posts created")

	linked := 0
	for _, pair := range seedConnections {
		from, to := userIDs[pair[0]], userIDs[pair[1]]

		exists, err := connections.ExistsBetween(ctx, from, to)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to check seed connection")
		}
		if exists {
			continue
		}

		conn, err := connections.Create(ctx, from, to)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create seed connection")
		}
		if _, err := connections.SetStatus(ctx, conn.Id, models.ConnectionStatusConnected); err != nil {
			log.Fatal().Err(err).Msg("Failed to accept seed connection")
		}
		linked++
	}
	log.Info().Int("count", linked).Msg("Seed connections created")

	log.Info().Msg("Database seeding complete")
}
