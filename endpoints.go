package producthunt

const (
	defaultGraphQLURL = "https://api.producthunt.com/v2/api/graphql"
	defaultOAuthURL   = "https://api.producthunt.com/v2/oauth/token"
)

// Operation is a named GraphQL query document.
type Operation struct {
	Name  string
	Query string
}

// postsOperation fetches full post fields, vote-ranked, with pagination.
var postsOperation = Operation{
	Name: "Posts",
	Query: `
  query Posts($first: Int!, $after: String, $postedAfter: DateTime, $postedBefore: DateTime) {
    posts(first: $first, after: $after, postedAfter: $postedAfter, postedBefore: $postedBefore, order: VOTES) {
      edges {
        node {
          id
          name
          tagline
          description
          slug
          votesCount
          commentsCount
          createdAt
          featuredAt
          website
          url
          thumbnail { type url }
          media { type url videoUrl }
          user { id name username profileImage headline }
          makers { id name username profileImage headline }
          topics { edges { node { id name slug } } }
        }
        cursor
      }
      pageInfo {
        hasNextPage
        hasPreviousPage
        startCursor
        endCursor
      }
    }
  }
`,
}

// votesOperation is the reduced query: ids and vote counts only.
var votesOperation = Operation{
	Name: "PostVotes",
	Query: `
  query PostVotes($first: Int!, $postedAfter: DateTime, $postedBefore: DateTime) {
    posts(first: $first, postedAfter: $postedAfter, postedBefore: $postedBefore, order: VOTES) {
      edges {
        node {
          id
          votesCount
        }
      }
    }
  }
`,
}
